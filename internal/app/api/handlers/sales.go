package handlers

import (
	"github.com/gin-gonic/gin"

	possvc "github.com/irontrack/gymdesk/internal/app/service/pos"
)

type CreateSaleRequest struct {
	Items []possvc.SaleLineRequest `json:"items"`
}

// @Summary      Create Sale
// @Description  Atomically checks and decrements stock for every line, then records the sale.
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        request body CreateSaleRequest true "Sale line items"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/sales [post]
func ApiCreateSale(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		sale, err := svc.CreateSale(c.Request.Context(), req.Items)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, sale)
	}
}

// @Summary      List Sales
// @Tags         Sales
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/sales [get]
func ApiListSales(svc *possvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := svc.ListSales(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, sales)
	}
}

func RegisterSaleRoutes(r gin.IRouter, svc *possvc.Service) {
	r.POST("/sales", ApiCreateSale(svc))
	r.GET("/sales", ApiListSales(svc))
}
