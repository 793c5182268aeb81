// Package api provides error handling utilities for HTTP APIs
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinebot/internal/logger"
	chatboterrors "github.com/mantonx/cinebot/internal/modules/chatbotmodule/errors"
)

// Error codes returned in ErrorDetails.Code.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeCatalog    = "CATALOG_INVALID"
	CodeConfig     = "CONFIG_ERROR"
	CodeStorage    = "STORAGE_ERROR"
	CodeResponder  = "RESPONDER_ERROR"
	CodeTimeout    = "TIMEOUT"
	CodeCancelled  = "CANCELLED"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error   ErrorDetails `json:"error"`
	Success bool         `json:"success"`
}

// ErrorDetails contains detailed error information
type ErrorDetails struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Operation string                 `json:"operation,omitempty"`
	Retryable bool                   `json:"retryable"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Classify maps err to an HTTP status, an error code and whether a retry may
// succeed.
func Classify(err error) (status int, code string, retryable bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout, true
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, CodeCancelled, false
	case errors.Is(err, chatboterrors.ErrPersonaNotFound):
		return http.StatusNotFound, CodeNotFound, false
	case errors.Is(err, chatboterrors.ErrInvalidInput):
		return http.StatusBadRequest, CodeValidation, false
	}

	switch chatboterrors.GetType(err) {
	case chatboterrors.ErrorTypeValidation:
		return http.StatusBadRequest, CodeValidation, false
	case chatboterrors.ErrorTypeCatalog:
		return http.StatusUnprocessableEntity, CodeCatalog, false
	case chatboterrors.ErrorTypeConfig:
		return http.StatusInternalServerError, CodeConfig, false
	case chatboterrors.ErrorTypeStorage:
		return http.StatusServiceUnavailable, CodeStorage, true
	case chatboterrors.ErrorTypeResponder:
		return http.StatusBadGateway, CodeResponder, true
	}
	return http.StatusInternalServerError, CodeInternal, false
}

// RespondWithError sends a structured error response
func RespondWithError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	status, code, retryable := Classify(err)
	details := ErrorDetails{
		Code:      code,
		Message:   err.Error(),
		Retryable: retryable,
		RequestID: requestID,
	}

	var cErr *chatboterrors.ChatbotError
	if errors.As(err, &cErr) {
		details.Operation = cErr.Op
		if len(cErr.Details) > 0 {
			details.Context = cErr.Details
		}
	}

	fields := []interface{}{"code", code, "status", status, "error", err, "request_id", requestID}
	if details.Operation != "" {
		fields = append(fields, "operation", details.Operation)
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request rejected", fields...)
	}

	c.JSON(status, ErrorResponse{Success: false, Error: details})
}

// RespondWithValidationError sends a 400 for malformed input.
func RespondWithValidationError(c *gin.Context, op string, err error) {
	RespondWithError(c, chatboterrors.ValidationError(op, fmt.Errorf("%w: %v", chatboterrors.ErrInvalidInput, err)))
}

// ErrorMiddleware is a middleware that recovers from panics and handles errors
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch v := r.(type) {
				case error:
					err = v
				case string:
					err = errors.New(v)
				default:
					err = errors.New("unknown panic")
				}

				logger.Error("panic recovered",
					"error", err,
					"request_path", c.Request.URL.Path,
					"request_method", c.Request.Method,
				)

				RespondWithError(c, chatboterrors.New(chatboterrors.ErrorTypeInternal, "panic", err))
				c.Abort()
			}
		}()

		c.Next()
	}
}
