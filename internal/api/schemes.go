package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/domain"       // Importing domain models
	"bhashaconnect/internal/utils"        // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SchemeRequest is the validated create/update payload
type SchemeRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`   // Scheme title
	Description string `json:"description" binding:"required,min=10"`    // Scheme description
	Eligibility string `json:"eligibility" binding:"required,min=5"`     // Eligibility criteria
	Link        string `json:"link" binding:"omitempty,url"`             // Optional official link
	Language    string `json:"language" binding:"required,min=2,max=50"` // Listing language
	Category    string `json:"category" binding:"omitempty,max=100"`     // Optional category
	IsActive    *bool  `json:"is_active"`                                // Visibility flag, defaults to true
}

// isActive resolves the visibility flag, defaulting to true when unset
func (r SchemeRequest) isActive() bool {
	if r.IsActive == nil {
		return true // Default visibility
	}
	return *r.IsActive
}

// schemeFilters are the optional listing filters, applied identically to
// the count query and the page query. IsActive always carries a value so
// the listing defaults to visible schemes.
type schemeFilters struct {
	Language string // Exact match
	Category string // Substring match
	IsActive bool   // Visibility flag
}

// apply adds the filter predicates to a query
func (f schemeFilters) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("is_active = ?", f.IsActive) // Visibility flag always applies
	if f.Language != "" {
		q = q.Where("language = ?", f.Language) // Filter by exact language
	}
	if f.Category != "" {
		q = q.Where("category LIKE ?", "%"+f.Category+"%") // Filter by category substring
	}
	return q
}

// fetchScheme loads one scheme row
func fetchScheme(db *gorm.DB, id uint) (*domain.Scheme, error) {
	var row domain.Scheme
	if err := db.First(&row, id).Error; err != nil {
		return nil, err // Not found or query failure
	}
	return &row, nil
}

// ListSchemesHandler returns a filtered, paginated scheme listing. Only
// active schemes are returned unless is_active=false is passed explicitly.
func ListSchemesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Cache key covers every parameter that shapes the listing
		cacheKey := listCacheKey("schemes", c, "language", "category", "is_active", "page", "limit")
		var cached struct {
			Schemes    []domain.Scheme     `json:"schemes"`    // Page of schemes
			Pagination response.Pagination `json:"pagination"` // Pagination block
		}
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			response.Success(c, http.StatusOK, "", gin.H{"schemes": cached.Schemes, "pagination": cached.Pagination})
			return
		}
		filters := schemeFilters{
			Language: c.Query("language"),                        // Optional exact language
			Category: c.Query("category"),                        // Optional category substring
			IsActive: c.DefaultQuery("is_active", "true") == "true", // Visibility flag, default true
		}
		page, limit := parsePageLimit(c) // Pagination parameters
		var total int64                  // Total matching rows
		// Count with the same predicates as the page query
		if err := filters.apply(db.Model(&domain.Scheme{})).Count(&total).Error; err != nil {
			internalError(c, "Count schemes", err)
			return
		}
		rows := make([]domain.Scheme, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(db.Model(&domain.Scheme{})).
			Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get schemes", err)
			return
		}
		data := gin.H{"schemes": rows, "pagination": response.NewPagination(page, limit, total)}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, data, listCacheTTL)
		response.Success(c, http.StatusOK, "", data)
	}
}

// GetSchemeHandler returns a single scheme by id
func GetSchemeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		scheme, err := fetchScheme(db, id) // Load the row
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Scheme not found") // Row is absent
				return
			}
			internalError(c, "Get scheme", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"scheme": scheme})
	}
}

// GetSchemesByCategoryHandler returns active schemes in a category,
// optionally filtered by language
func GetSchemesByCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := schemeFilters{
			Language: c.Query("language"), // Optional exact language
			Category: c.Param("category"), // Required path parameter
			IsActive: true,                // Category browsing shows active schemes only
		}
		page, limit := parsePageLimit(c) // Pagination parameters
		rows := make([]domain.Scheme, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(db.Model(&domain.Scheme{})).
			Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get schemes by category", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"schemes": rows})
	}
}

// SearchSchemesHandler matches a free-text token against title, description
// and category of active schemes, case-insensitively
func SearchSchemesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Param("query")        // Search token
		page, limit := parsePageLimit(c) // Pagination parameters
		term := "%" + query + "%"        // Substring pattern
		q := db.Model(&domain.Scheme{}).
			Where("title LIKE ? OR description LIKE ? OR category LIKE ?", term, term, term).
			Where("is_active = ?", true)
		// Optional language restriction
		if language := c.Query("language"); language != "" {
			q = q.Where("language = ?", language)
		}
		rows := make([]domain.Scheme, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := q.Order("created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Search schemes", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"results": rows})
	}
}

// CreateSchemeHandler creates a scheme. Admin gating happens in the route
// middleware; schemes carry no owner.
func CreateSchemeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SchemeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		scheme := domain.Scheme{
			Title:       req.Title,       // Scheme title
			Description: req.Description, // Scheme description
			Eligibility: req.Eligibility, // Eligibility criteria
			Link:        req.Link,        // Optional official link
			Language:    req.Language,    // Listing language
			Category:    req.Category,    // Optional category
			IsActive:    req.isActive(),  // Visibility flag, default true
		}
		// Insert the row
		if err := db.Create(&scheme).Error; err != nil {
			internalError(c, "Create scheme", err)
			return
		}
		response.Success(c, http.StatusCreated, "Scheme created successfully", gin.H{"scheme": scheme})
	}
}

// UpdateSchemeHandler overwrites a scheme's fields, admin only
func UpdateSchemeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var req SchemeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		var existing domain.Scheme // Check existence first
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Scheme not found") // Row is absent
				return
			}
			internalError(c, "Update scheme", err)
			return
		}
		// Overwrite all validated fields
		updates := map[string]any{
			"title":       req.Title,       // Scheme title
			"description": req.Description, // Scheme description
			"eligibility": req.Eligibility, // Eligibility criteria
			"link":        req.Link,        // Optional official link
			"language":    req.Language,    // Listing language
			"category":    req.Category,    // Optional category
			"is_active":   req.isActive(),  // Visibility flag
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			internalError(c, "Update scheme", err)
			return
		}
		updated, err := fetchScheme(db, id) // Return the updated row
		if err != nil {
			internalError(c, "Update scheme", err)
			return
		}
		response.Success(c, http.StatusOK, "Scheme updated successfully", gin.H{"scheme": updated})
	}
}

// DeleteSchemeHandler permanently removes a scheme, admin only
func DeleteSchemeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var existing domain.Scheme // Check existence first
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Scheme not found") // Row is absent
				return
			}
			internalError(c, "Delete scheme", err)
			return
		}
		// Permanently remove the row
		if err := db.Delete(&existing).Error; err != nil {
			internalError(c, "Delete scheme", err)
			return
		}
		response.Success(c, http.StatusOK, "Scheme deleted successfully", nil)
	}
}
