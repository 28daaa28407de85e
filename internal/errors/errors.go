package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError represents a caller-facing error response. The external
// contract is a single human-readable message under the "error" key.
type APIError struct {
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(message string) *APIError {
	return &APIError{Message: message}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(message))
}

// NotFound sends a 404 response. Id-based lookups that miss return an
// empty body, so no message is attached.
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(message))
}
