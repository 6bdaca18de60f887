// Package responses maps service errors onto HTTP responses.
package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/dto"
	"todo-server/internal/utils/apperrors"
)

// HandleError writes the error body derived from the error's taxonomy kind
// and aborts the request.
func HandleError(c *gin.Context, err error) {
	c.Error(err) //nolint:errcheck
	Error(c, statusFor(apperrors.KindOf(err)), apperrors.CodeOf(err), apperrors.MessageOf(err))
}

// Error writes an explicit error response and aborts the request.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.Response{
		Success: false,
		Error:   &dto.ErrorInfo{Code: code, Message: message},
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
