package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/domain"       // Importing domain models
	"bhashaconnect/internal/utils"        // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"   // Acting user's ID
	ContextUserRole = "userRole" // Acting user's role
)

// JWTAuthMiddleware validates JWT tokens and attaches the acting user to the context.
// The user row is re-read so tokens for deleted users fail closed.
func JWTAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			response.AbortError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		var user domain.User // Fetch the user from the database
		if err := db.First(&user, claims.UserID).Error; err != nil {
			// Token for a deleted or unknown user
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(ContextUserID, user.ID)     // Store userID in context
		c.Set(ContextUserRole, user.Role) // Store role in context
		c.Next()                          // Proceed to the next handler
	}
}
