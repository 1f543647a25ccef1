package handlers

import (
	"github.com/gin-gonic/gin"

	possvc "github.com/irontrack/gymdesk/internal/app/service/pos"
)

type FoodRequest struct {
	Name  string `json:"name"`
	Price *int64 `json:"price"`
	Stock *int64 `json:"stock"`
}

// @Summary      List Food Items
// @Tags         Foods
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/foods [get]
func ApiListFoods(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		foods, err := svc.ListFoods(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, foods)
	}
}

// @Summary      Create Food Item (Admin)
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        request body FoodRequest true "Food item"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/foods [post]
func ApiCreateFood(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		f, err := svc.CreateFood(c.Request.Context(), possvc.FoodRequest{Name: req.Name, Price: req.Price, Stock: req.Stock})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, f)
	}
}

// @Summary      Update Food Item (Admin)
// @Tags         Foods
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Food ID"
// @Param        request body FoodRequest true "Food item"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/foods/{id} [put]
func ApiUpdateFood(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		f, err := svc.UpdateFood(c.Request.Context(), c.Param("id"), possvc.FoodRequest{Name: req.Name, Price: req.Price, Stock: req.Stock})
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, f)
	}
}

// @Summary      Delete Food Item (Admin)
// @Tags         Foods
// @Produce      json
// @Param        id path string true "Food ID"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/foods/{id} [delete]
func ApiDeleteFood(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteFood(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		ok[any](c, nil)
	}
}

func RegisterFoodRoutes(r gin.IRouter, admin gin.IRouter, svc *possvc.Service) {
	r.GET("/foods", ApiListFoods(svc))
	admin.POST("/foods", ApiCreateFood(svc))
	admin.PUT("/foods/:id", ApiUpdateFood(svc))
	admin.DELETE("/foods/:id", ApiDeleteFood(svc))
}
