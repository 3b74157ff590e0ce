package api

import (
	"bhashaconnect/internal/domain"     // Role constants
	"bhashaconnect/internal/middleware" // Auth and role middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRoutes wires every resource router under /api. rdb may be nil,
// which disables the listing cache.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, jwtSecret string) {
	auth := middleware.JWTAuthMiddleware(db, jwtSecret) // Identity resolution
	api := r.Group("/api")                              // Common base path

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", RegisterHandler(db, jwtSecret)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(db, jwtSecret))       // Login endpoint
	authGroup.GET("/me", auth, MeHandler(db))                   // Current profile endpoint

	// Job routes (reads public, mutations owner/admin gated per row)
	jobs := api.Group("/jobs")
	jobs.GET("", ListJobsHandler(db, rdb))       // List endpoint
	jobs.GET("/:id", GetJobHandler(db))          // Get by id endpoint
	jobs.POST("", auth, CreateJobHandler(db))    // Create endpoint
	jobs.PUT("/:id", auth, UpdateJobHandler(db)) // Update endpoint
	jobs.DELETE("/:id", auth, DeleteJobHandler(db)) // Delete endpoint

	// Training routes (mutations restricted to entrepreneurs and admins)
	training := api.Group("/training")
	trainingRole := middleware.RequireRoles(domain.RoleEntrepreneur, domain.RoleAdmin)
	training.GET("", ListTrainingHandler(db, rdb))                         // List endpoint
	training.GET("/:id", GetTrainingHandler(db))                           // Get by id endpoint
	training.GET("/type/:type", GetTrainingByTypeHandler(db))              // Filter by type endpoint
	training.POST("", auth, trainingRole, CreateTrainingHandler(db))       // Create endpoint
	training.PUT("/:id", auth, trainingRole, UpdateTrainingHandler(db))    // Update endpoint
	training.DELETE("/:id", auth, trainingRole, DeleteTrainingHandler(db)) // Delete endpoint

	// Marketplace routes (reads public, mutations owner/admin gated per row)
	marketplace := api.Group("/marketplace")
	marketplace.GET("", ListMarketplaceHandler(db, rdb))              // List endpoint
	marketplace.GET("/:id", GetMarketplaceEntryHandler(db))           // Get by id endpoint
	marketplace.GET("/search/:query", SearchMarketplaceHandler(db))   // Search endpoint
	marketplace.POST("", auth, CreateMarketplaceEntryHandler(db))     // Create endpoint
	marketplace.PUT("/:id", auth, UpdateMarketplaceEntryHandler(db))  // Update endpoint
	marketplace.DELETE("/:id", auth, DeleteMarketplaceEntryHandler(db)) // Delete endpoint

	// Scheme routes (mutations admin only)
	schemes := api.Group("/schemes")
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	schemes.GET("", ListSchemesHandler(db, rdb))                        // List endpoint
	schemes.GET("/:id", GetSchemeHandler(db))                           // Get by id endpoint
	schemes.GET("/category/:category", GetSchemesByCategoryHandler(db)) // Filter by category endpoint
	schemes.GET("/search/:query", SearchSchemesHandler(db))             // Search endpoint
	schemes.POST("", auth, adminOnly, CreateSchemeHandler(db))          // Create endpoint
	schemes.PUT("/:id", auth, adminOnly, UpdateSchemeHandler(db))       // Update endpoint
	schemes.DELETE("/:id", auth, adminOnly, DeleteSchemeHandler(db))    // Delete endpoint
}
