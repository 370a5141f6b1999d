package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request correlation id
const RequestIDKey = "request_id"

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error writes an error body with the request id attached. details is
// dropped when empty.
func Error(ctx *gin.Context, status int, message, details string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString(RequestIDKey),
	})
}

// AbortWithError writes the error body and stops the handler chain
func AbortWithError(ctx *gin.Context, status int, message, details string) {
	Error(ctx, status, message, details)
	ctx.Abort()
}

// OK writes a 200 JSON body
func OK(ctx *gin.Context, body any) {
	ctx.JSON(http.StatusOK, body)
}
