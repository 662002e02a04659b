package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody là envelope chung cho mọi response lỗi
type ErrorBody struct {
	Success bool        `json:"success"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success responses: payload được merge cùng cấp với "success"
// vd: {"success": true, "review": {...}}
func Success(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	c.JSON(statusCode, body)
}

func OK(c *gin.Context, payload gin.H) {
	Success(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	Success(c, http.StatusCreated, payload)
}

// Error responses
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	})
}

// AbortWithError dùng trong middleware: ghi response rồi dừng chain
func AbortWithError(c *gin.Context, statusCode int, code, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
