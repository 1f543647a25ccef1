package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authsvc "github.com/irontrack/gymdesk/internal/app/service/auth"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/response"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Exchanges back-office credentials for a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/auth/login [post]
func ApiLogin(svc *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			// bad credentials surface as unauthorized, not as a state error
			if apperr.IsKind(err, apperr.KindState) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthorized, apperr.Message(err)))
				return
			}
			fail(c, err)
			return
		}
		ok(c, res)
	}
}

func RegisterAuthRoutes(r gin.IRouter, svc *authsvc.Service) {
	r.POST("/auth/login", ApiLogin(svc))
}
