package handlers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	admin := api.Group("/")

	RegisterAuthRoutes(api, nil)
	RegisterPlanRoutes(api, admin, nil)
	RegisterMemberRoutes(api, nil, nil, time.UTC)
	RegisterCheckinRoutes(api, nil)
	RegisterTransactionRoutes(api, nil)
	RegisterDashboardRoutes(api, nil)
	RegisterFoodRoutes(api, admin, nil)
	RegisterSaleRoutes(api, nil)
	RegisterHealthRoutes(r)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/auth/login"))
	require.True(t, contains("GET /api/v1/plans"))
	require.True(t, contains("POST /api/v1/plans"))
	require.True(t, contains("PUT /api/v1/plans/:id"))
	require.True(t, contains("DELETE /api/v1/plans/:id"))
	require.True(t, contains("GET /api/v1/members"))
	require.True(t, contains("POST /api/v1/members"))
	require.True(t, contains("PUT /api/v1/members/:id"))
	require.True(t, contains("POST /api/v1/members/:id/renew"))
	require.True(t, contains("POST /api/v1/checkins"))
	require.True(t, contains("GET /api/v1/checkins/today"))
	require.True(t, contains("GET /api/v1/transactions"))
	require.True(t, contains("POST /api/v1/transactions/search"))
	require.True(t, contains("GET /api/v1/dashboard/stats"))
	require.True(t, contains("GET /api/v1/foods"))
	require.True(t, contains("POST /api/v1/sales"))
	require.True(t, contains("GET /api/v1/sales"))
	require.True(t, contains("GET /healthz"))
}
