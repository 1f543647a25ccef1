package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/irontrack/gymdesk/pkg/config"
	"github.com/irontrack/gymdesk/pkg/response"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
)

// AuthRequired validates the bearer token and stores user_id/role on the
// gin context for downstream handlers and the request logger.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid token claims"))
			return
		}
		if sub, ok := claims["sub"].(string); ok {
			c.Set(ctxKeyUserID, sub)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ctxKeyRole, role)
		}
		c.Next()
	}
}

// AdminOnly gates mutating catalog/inventory routes on the admin role claim.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxKeyRole) != "admin" {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeForbidden, "admin role required"))
			return
		}
		c.Next()
	}
}
