package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // Cache key assembly
	"time"     // Cache TTL

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/middleware"   // Context keys set by auth middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// listCacheTTL bounds staleness of cached list responses
const listCacheTTL = 60 * time.Second

// parsePageLimit reads page/limit query parameters with defaults and caps
func parsePageLimit(c *gin.Context) (int, int) {
	page := 1   // Default page number
	limit := 10 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set page size within limits
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v // Set page size
		}
	}
	return page, limit
}

// parseID reads the :id path parameter; on failure it writes a 400 response
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id")) // Parse the path parameter
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id") // Non-numeric or non-positive id
		return 0, false
	}
	return uint(id), true
}

// currentUser reads the acting user's id and role set by the auth middleware
func currentUser(c *gin.Context) (uint, string, bool) {
	id, idOK := c.Get(middleware.ContextUserID)     // Get userID from context
	role, roleOK := c.Get(middleware.ContextUserRole) // Get role from context
	if !idOK || !roleOK {
		return 0, "", false // Middleware did not run
	}
	return id.(uint), role.(string), true
}

// requireUser reads the acting user or writes a 401 response
func requireUser(c *gin.Context) (uint, string, bool) {
	id, role, ok := currentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized") // No authenticated identity
	}
	return id, role, ok
}

// listCacheKey builds a cache key from the resource name and the query
// parameters that shape the listing
func listCacheKey(resource string, c *gin.Context, params ...string) string {
	parts := []string{resource, "list"} // Key prefix
	// Append each query parameter to the key parts
	for _, p := range params {
		parts = append(parts, p+"="+c.DefaultQuery(p, ""))
	}
	return strings.Join(parts, ":")
}

// internalError logs the failure with full detail and returns only a
// generic message to the caller
func internalError(c *gin.Context, op string, err error) {
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),  // Route that failed
		"error": err.Error(),   // Error message
	}).Error(op + " failed")    // Log the failure
	response.Error(c, http.StatusInternalServerError, "Internal server error")
}
