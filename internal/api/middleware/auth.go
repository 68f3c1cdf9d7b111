package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/content-gallery/internal/service"
	"github.com/d60-Lab/content-gallery/pkg/response"
)

// ClaimsKey is where RequireAdmin stores the verified claims.
const ClaimsKey = "authClaims"

// RequireAdmin gates state-changing and admin-only routes behind a
// signed bearer token. Every protected route goes through this one
// policy: missing or malformed credential is 401, a credential that
// fails verification or lacks the admin role is 403.
func RequireAdmin(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Unauthorized - Admin token required")
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			response.Unauthorized(c, "Unauthorized - Admin token required")
			c.Abort()
			return
		}

		claims, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrNotConfigured) {
				response.InternalError(c, "Admin authentication not configured")
			} else {
				response.Forbidden(c, "Forbidden - Invalid admin token")
			}
			c.Abort()
			return
		}
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
