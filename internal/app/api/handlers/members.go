package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/irontrack/gymdesk/internal/app/service/dashboard"
	membersvc "github.com/irontrack/gymdesk/internal/app/service/member"
	"github.com/irontrack/gymdesk/internal/clock"
)

type RegisterMemberRequest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Email  *string `json:"email"`
	PlanID string  `json:"plan_id"`
}

type UpdateMemberRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

type RenewMemberRequest struct {
	PlanID string `json:"plan_id"`
}

// @Summary      List Members
// @Description  All members, newest joiners first, with derived status.
// @Tags         Members
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/members [get]
func ApiListMembers(svc *membersvc.Service, clk clock.Clock, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		members, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, dashboard.WithStatus(members, clk.Now().In(loc)))
	}
}

// @Summary      Register Member
// @Description  Creates a member on a plan and appends the registration transaction.
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        request body RegisterMemberRequest true "New member"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/members [post]
func ApiRegisterMember(svc *membersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.Register(c.Request.Context(), membersvc.RegisterRequest{
			Name:   req.Name,
			Phone:  req.Phone,
			Email:  req.Email,
			PlanID: req.PlanID,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, m)
	}
}

// @Summary      Update Member Profile
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        id      path string              true "Member ID"
// @Param        request body UpdateMemberRequest true "Profile fields"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/members/{id} [put]
func ApiUpdateMember(svc *membersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.UpdateProfile(c.Request.Context(), c.Param("id"), membersvc.UpdateProfileRequest{
			Name:  req.Name,
			Phone: req.Phone,
			Email: req.Email,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, m)
	}
}

// @Summary      Renew Membership
// @Description  Applies a plan to an existing member and appends the renewal transaction.
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        id      path string             true "Member ID"
// @Param        request body RenewMemberRequest true "Plan to apply"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/members/{id}/renew [post]
func ApiRenewMember(svc *membersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RenewMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		m, err := svc.Renew(c.Request.Context(), c.Param("id"), req.PlanID)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, m)
	}
}

func RegisterMemberRoutes(r gin.IRouter, svc *membersvc.Service, clk clock.Clock, loc *time.Location) {
	r.GET("/members", ApiListMembers(svc, clk, loc))
	r.POST("/members", ApiRegisterMember(svc))
	r.PUT("/members/:id", ApiUpdateMember(svc))
	r.POST("/members/:id/renew", ApiRenewMember(svc))
}
