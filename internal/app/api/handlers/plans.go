package handlers

import (
	"github.com/gin-gonic/gin"

	plansvc "github.com/irontrack/gymdesk/internal/app/service/plan"
)

type PlanRequest struct {
	Name             string `json:"name"`
	DurationInMonths *int   `json:"duration_in_months"`
	Price            *int64 `json:"price"`
}

// @Summary      List Membership Plans
// @Tags         Plans
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/plans [get]
func ApiListPlans(svc *plansvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, plans)
	}
}

// @Summary      Create Membership Plan (Admin)
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body PlanRequest true "Plan definition"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/plans [post]
func ApiCreatePlan(svc *plansvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		p, err := svc.Create(c.Request.Context(), plansvc.CreateRequest{
			Name:             req.Name,
			DurationInMonths: req.DurationInMonths,
			Price:            req.Price,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, p)
	}
}

// @Summary      Update Membership Plan (Admin)
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Plan ID"
// @Param        request body PlanRequest true "Plan definition"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/plans/{id} [put]
func ApiUpdatePlan(svc *plansvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		p, err := svc.Update(c.Request.Context(), c.Param("id"), plansvc.UpdateRequest{
			Name:             req.Name,
			DurationInMonths: req.DurationInMonths,
			Price:            req.Price,
		})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, p)
	}
}

// @Summary      Delete Membership Plan (Admin)
// @Tags         Plans
// @Produce      json
// @Param        id path string true "Plan ID"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/plans/{id} [delete]
func ApiDeletePlan(svc *plansvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		ok[any](c, nil)
	}
}

func RegisterPlanRoutes(r gin.IRouter, admin gin.IRouter, svc *plansvc.Service) {
	r.GET("/plans", ApiListPlans(svc))
	admin.POST("/plans", ApiCreatePlan(svc))
	admin.PUT("/plans/:id", ApiUpdatePlan(svc))
	admin.DELETE("/plans/:id", ApiDeletePlan(svc))
}
