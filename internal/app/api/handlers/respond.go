package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/logctx"
	"github.com/irontrack/gymdesk/pkg/response"
)

var kindToCode = map[apperr.Kind]response.APIResponseCode{
	apperr.KindValidation:        response.APIResponseCodeBadRequest,
	apperr.KindNotFound:          response.APIResponseCodeNotFound,
	apperr.KindConflict:          response.APIResponseCodeConflict,
	apperr.KindState:             response.APIResponseCodeInvalidState,
	apperr.KindInsufficientStock: response.APIResponseCodeInsufficientStock,
	apperr.KindInternal:          response.APIResponseCodeError,
}

// fail translates a service error into the response envelope. Expected kinds
// carry their client-actionable message; internal errors are logged and
// surfaced generically.
func fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	code, ok := kindToCode[kind]
	if !ok {
		code = response.APIResponseCodeError
	}
	if kind == apperr.KindInternal {
		logctx.FromGin(c, zap.NewNop().Sugar()).Errorw("request failed", "err", err)
	}
	c.JSON(http.StatusOK, response.ErrorT[any](code, apperr.Message(err)))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, msg))
}

func ok[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, response.OKT(data))
}
