package handlers

import (
	"github.com/gin-gonic/gin"

	dashsvc "github.com/irontrack/gymdesk/internal/app/service/dashboard"
)

// @Summary      Dashboard Statistics
// @Description  KPIs, daily revenue/check-in series, busiest hours, and the expiring-soon list.
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/dashboard/stats [get]
func ApiDashboardStats(svc *dashsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, stats)
	}
}

func RegisterDashboardRoutes(r gin.IRouter, svc *dashsvc.Service) {
	r.GET("/dashboard/stats", ApiDashboardStats(svc))
}
