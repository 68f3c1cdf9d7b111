package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes a 200 with the given payload merged into the body.
// A nil payload produces {"success": true} alone.
func Success(c *gin.Context, data gin.H) {
	JSON(c, http.StatusOK, data)
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data gin.H) {
	JSON(c, http.StatusCreated, data)
}

// JSON writes an arbitrary success body with success=true folded in.
func JSON(c *gin.Context, code int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(code, body)
}

// BadRequest reports a caller error with a short message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// MissingFields reports a validation failure naming every absent field.
func MissingFields(c *gin.Context, fields []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    "Missing required fields",
		"required": fields,
	})
}

// Unauthorized is used when no usable credential accompanied the request.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// Forbidden is used when a credential was presented but failed verification.
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

// NotFound reports a missing record.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// InternalError hides the underlying error behind a fixed message; the
// cause belongs in the log, never in the body.
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// MethodNotAllowed answers requests whose path exists but whose method
// is not routed.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
