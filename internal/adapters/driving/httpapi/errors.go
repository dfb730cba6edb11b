package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeNotFound      = "not_found"
	CodeBadRequest    = "bad_request"
	CodeConflict      = "conflict"
	CodeInvalidSchema = "invalid_schema"
	CodeRateLimited   = "rate_limited"
	CodeInternal      = "internal"
)

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("httpapi: pack and compose services are required")

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a service error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSelectionConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrInvalidSchema):
		return http.StatusUnprocessableEntity, CodeInvalidSchema
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedSource):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func handleServiceError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Warn("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "an unexpected internal error occurred"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Message: err.Error()})
}
