package handlers

import (
	"github.com/gin-gonic/gin"

	txsvc "github.com/irontrack/gymdesk/internal/app/service/transaction"
)

// @Summary      List Transactions
// @Description  Full billing ledger, most recent first.
// @Tags         Transactions
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/transactions [get]
func ApiListTransactions(svc *txsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, rows)
	}
}

// @Summary      Search Transactions (Admin)
// @Description  Paginated and filterable ledger listing.
// @Tags         Transactions
// @Accept       json
// @Produce      json
// @Param        request body transaction.ScanRequest true "Filters, pagination, and sorting"
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/transactions/search [post]
func ApiSearchTransactions(svc *txsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req txsvc.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, res)
	}
}

func RegisterTransactionRoutes(r gin.IRouter, svc *txsvc.Service) {
	r.GET("/transactions", ApiListTransactions(svc))
	r.POST("/transactions/search", ApiSearchTransactions(svc))
}
