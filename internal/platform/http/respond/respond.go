// Package respond maps application errors to HTTP responses.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/shared/apperr"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status returns the HTTP status for err's code.
func Status(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a JSON error response and aborts the chain.
// Internal failures are logged and answered with a generic message.
func Error(c *gin.Context, err error) {
	status := Status(err)
	msg := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
