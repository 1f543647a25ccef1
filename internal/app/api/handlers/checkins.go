package handlers

import (
	"github.com/gin-gonic/gin"

	checkinsvc "github.com/irontrack/gymdesk/internal/app/service/checkin"
)

type CreateCheckinRequest struct {
	MemberID string `json:"member_id"`
}

// @Summary      Record Check-in
// @Description  Appends a check-in for an active member; expired memberships are rejected.
// @Tags         Check-ins
// @Accept       json
// @Produce      json
// @Param        request body CreateCheckinRequest true "Member checking in"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/checkins [post]
func ApiCreateCheckin(svc *checkinsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCheckinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		row, err := svc.Record(c.Request.Context(), req.MemberID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, row)
	}
}

// @Summary      Today's Check-ins
// @Tags         Check-ins
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/checkins/today [get]
func ApiTodaysCheckins(svc *checkinsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.Today(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, rows)
	}
}

func RegisterCheckinRoutes(r gin.IRouter, svc *checkinsvc.Service) {
	r.POST("/checkins", ApiCreateCheckin(svc))
	r.GET("/checkins/today", ApiTodaysCheckins(svc))
}
