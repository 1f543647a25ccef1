package response

// APIResponseCode is the machine-readable outcome carried by every response
// envelope. HTTP status stays 200; clients branch on the code.
type APIResponseCode int

const (
	APIResponseCodeOK                APIResponseCode = 0
	APIResponseCodeBadRequest        APIResponseCode = 40000
	APIResponseCodeUnauthorized      APIResponseCode = 40100
	APIResponseCodeForbidden         APIResponseCode = 40300
	APIResponseCodeNotFound          APIResponseCode = 40400
	APIResponseCodeConflict          APIResponseCode = 40900
	APIResponseCodeInvalidState      APIResponseCode = 42200
	APIResponseCodeInsufficientStock APIResponseCode = 42210
	APIResponseCodeError             APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:                "ok",
	APIResponseCodeBadRequest:        "bad request",
	APIResponseCodeUnauthorized:      "unauthorized",
	APIResponseCodeForbidden:         "forbidden",
	APIResponseCodeNotFound:          "not found",
	APIResponseCodeConflict:          "conflict",
	APIResponseCodeInvalidState:      "invalid state",
	APIResponseCodeInsufficientStock: "insufficient stock",
	APIResponseCodeError:             "unexpected error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response; data usually carries the human-readable
// detail message.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}
