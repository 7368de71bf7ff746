package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError is the error type every service and repository operation fails with.
// Details carries optional field-keyed messages for form-level feedback.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Status maps the error code to an HTTP status
func (e *APIError) Status() int {
	switch e.Code {
	case ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewBadRequest creates an APIError for a caller input that violates a business rule.
func NewBadRequest(message string) *APIError {
	return &APIError{Code: ErrCodeBadRequest, Message: message}
}

// NewBadRequestWithDetails creates a BadRequest error with field-keyed details.
func NewBadRequestWithDetails(message string, details map[string]string) *APIError {
	return &APIError{Code: ErrCodeBadRequest, Message: message, Details: details}
}

// NewUnauthorized creates an APIError for a missing/invalid credential or a
// caller acting on a resource they do not own.
func NewUnauthorized(message string) *APIError {
	return &APIError{Code: ErrCodeUnauthorized, Message: message}
}

// NewNotFound creates an APIError for a referenced entity that does not exist.
func NewNotFound(message string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: message}
}

// NewNotFoundWithDetails creates a NotFound error with field-keyed details.
func NewNotFoundWithDetails(message string, details map[string]string) *APIError {
	return &APIError{Code: ErrCodeNotFound, Message: message, Details: details}
}

// Respond translates an error into an HTTP response. Typed errors map to their
// status; anything else is surfaced as a generic 500 without internals.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status(), apiErr)
		return
	}

	c.JSON(http.StatusInternalServerError, &APIError{
		Code:    ErrCodeInternalError,
		Message: "An error occurred.",
	})
}

// Unauthorized sends a 401 response without going through an error value.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, NewUnauthorized(message))
}

// BadRequest sends a 400 response without going through an error value.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, NewBadRequest(message))
}

// NotFound sends a 404 response without going through an error value.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, NewNotFound(message))
}
