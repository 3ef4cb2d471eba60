package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error payload returned by every endpoint on failure.
type ErrorResponse struct {
	Error  string           `json:"error" example:"Invalid token"`
	Fields []FieldViolation `json:"fields,omitempty"`
}

// FieldViolation identifies a single invalid field in a rejected request body.
type FieldViolation struct {
	Field   string `json:"field" example:"title"`
	Message string `json:"message" example:"must be between 3 and 100 characters"`
}

// ListResponse wraps list payloads as {items: [...]}.
type ListResponse struct {
	Items interface{} `json:"items"`
}

// OK sends a 200 with the payload as-is.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 with the created record.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// List sends a 200 with the items wrapped in {items: [...]}.
func List(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, ListResponse{Items: items})
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found error.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests sends a 429 Too Many Requests error.
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalServerError sends a 500 Internal Server Error.
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// ValidationFailed sends a 400 with per-field violation detail.
func ValidationFailed(c *gin.Context, violations []FieldViolation) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Fields: violations,
	})
}

// BindJSONError reports a request body that failed to decode, carrying the
// decoder's detail so clients can see what was malformed.
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format: "+err.Error())
}
