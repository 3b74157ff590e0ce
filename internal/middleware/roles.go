package middleware

import (
	"net/http" // HTTP status codes

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/authz"        // Permission checks

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRoles restricts an endpoint to callers holding one of the given roles.
// Must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole) // Get role from context
		// Check if the role exists in context
		if !exists {
			// If not, abort with unauthorized status
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		// Check role membership
		if !authz.HasRole(role.(string), roles...) {
			// If the role is not allowed, abort with forbidden status
			response.AbortError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next() // Proceed to the next handler
	}
}
