package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/authz"        // Permission checks
	"bhashaconnect/internal/domain"       // Importing domain models
	"bhashaconnect/internal/utils"        // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// MarketplaceRequest is the validated create/update payload
type MarketplaceRequest struct {
	BusinessName   string `json:"business_name" binding:"required,min=2,max=255"` // Business name
	OwnerName      string `json:"owner_name" binding:"required,min=2,max=255"`    // Business owner display name
	ProductService string `json:"product_service" binding:"required,min=5"`       // Offered products/services
	Contact        string `json:"contact" binding:"required,min=5,max=255"`       // Free-form contact
	Language       string `json:"language" binding:"required,min=2,max=50"`       // Listing language
	Location       string `json:"location" binding:"omitempty,max=255"`           // Optional location
	Description    string `json:"description" binding:"omitempty,max=1000"`       // Optional description
}

// MarketplaceWithCreator is an entry joined with its creator's display name
type MarketplaceWithCreator struct {
	domain.MarketplaceEntry
	CreatedByName string `gorm:"column:created_by_name" json:"created_by_name"` // Creator display name
}

// marketplaceFilters are the optional listing filters, applied identically
// to the count query and the page query
type marketplaceFilters struct {
	Language string // Exact match
	Location string // Substring match
}

// apply adds the filter predicates to a query
func (f marketplaceFilters) apply(q *gorm.DB) *gorm.DB {
	if f.Language != "" {
		q = q.Where("marketplace.language = ?", f.Language) // Filter by exact language
	}
	if f.Location != "" {
		q = q.Where("marketplace.location LIKE ?", "%"+f.Location+"%") // Filter by location substring
	}
	return q
}

// marketplaceSelect builds the base query joining the creator's name
func marketplaceSelect(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.MarketplaceEntry{}).
		Select("marketplace.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = marketplace.created_by")
}

// fetchMarketplaceEntry loads one entry with its creator's name
func fetchMarketplaceEntry(db *gorm.DB, id uint) (*MarketplaceWithCreator, error) {
	var row MarketplaceWithCreator
	if err := marketplaceSelect(db).Where("marketplace.id = ?", id).Take(&row).Error; err != nil {
		return nil, err // Not found or query failure
	}
	return &row, nil
}

// ListMarketplaceHandler returns a filtered, paginated marketplace listing
func ListMarketplaceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Cache key covers every parameter that shapes the listing
		cacheKey := listCacheKey("marketplace", c, "language", "location", "page", "limit")
		var cached struct {
			Marketplace []MarketplaceWithCreator `json:"marketplace"` // Page of entries
			Pagination  response.Pagination      `json:"pagination"`  // Pagination block
		}
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			response.Success(c, http.StatusOK, "", gin.H{"marketplace": cached.Marketplace, "pagination": cached.Pagination})
			return
		}
		filters := marketplaceFilters{
			Language: c.Query("language"), // Optional exact language
			Location: c.Query("location"), // Optional location substring
		}
		page, limit := parsePageLimit(c) // Pagination parameters
		var total int64                  // Total matching rows
		// Count with the same predicates as the page query
		if err := filters.apply(db.Model(&domain.MarketplaceEntry{})).Count(&total).Error; err != nil {
			internalError(c, "Count marketplace entries", err)
			return
		}
		rows := make([]MarketplaceWithCreator, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(marketplaceSelect(db)).
			Order("marketplace.created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get marketplace entries", err)
			return
		}
		data := gin.H{"marketplace": rows, "pagination": response.NewPagination(page, limit, total)}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, data, listCacheTTL)
		response.Success(c, http.StatusOK, "", data)
	}
}

// GetMarketplaceEntryHandler returns a single entry by id
func GetMarketplaceEntryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		entry, err := fetchMarketplaceEntry(db, id) // Load the joined row
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Marketplace entry not found") // Row is absent
				return
			}
			internalError(c, "Get marketplace entry", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"entry": entry})
	}
}

// SearchMarketplaceHandler matches a free-text token against business name,
// product/service and description, case-insensitively
func SearchMarketplaceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Param("query")        // Search token
		page, limit := parsePageLimit(c) // Pagination parameters
		term := "%" + query + "%"        // Substring pattern
		q := marketplaceSelect(db).
			Where("business_name LIKE ? OR product_service LIKE ? OR description LIKE ?", term, term, term)
		// Optional language restriction
		if language := c.Query("language"); language != "" {
			q = q.Where("marketplace.language = ?", language)
		}
		rows := make([]MarketplaceWithCreator, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := q.Order("marketplace.created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Search marketplace", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"results": rows})
	}
}

// CreateMarketplaceEntryHandler creates an entry owned by the caller
func CreateMarketplaceEntryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		var req MarketplaceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		entry := domain.MarketplaceEntry{
			BusinessName:   req.BusinessName,   // Business name
			OwnerName:      req.OwnerName,      // Business owner display name
			ProductService: req.ProductService, // Offered products/services
			Contact:        req.Contact,        // Free-form contact
			Language:       req.Language,       // Listing language
			Location:       req.Location,       // Optional location
			Description:    req.Description,    // Optional description
			CreatedBy:      userID,             // Stamp the caller as owner
		}
		// Insert the row
		if err := db.Create(&entry).Error; err != nil {
			internalError(c, "Create marketplace entry", err)
			return
		}
		created, err := fetchMarketplaceEntry(db, entry.ID) // Return the freshly joined row
		if err != nil {
			internalError(c, "Create marketplace entry", err)
			return
		}
		response.Success(c, http.StatusCreated, "Marketplace entry created successfully", gin.H{"entry": created})
	}
}

// UpdateMarketplaceEntryHandler overwrites an entry's fields, owner or admin only
func UpdateMarketplaceEntryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var req MarketplaceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		var existing domain.MarketplaceEntry // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Marketplace entry not found") // Row is absent
				return
			}
			internalError(c, "Update marketplace entry", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only update your own marketplace entries")
			return
		}
		// Overwrite all validated fields
		updates := map[string]any{
			"business_name":   req.BusinessName,   // Business name
			"owner_name":      req.OwnerName,      // Business owner display name
			"product_service": req.ProductService, // Offered products/services
			"contact":         req.Contact,        // Free-form contact
			"language":        req.Language,       // Listing language
			"location":        req.Location,       // Optional location
			"description":     req.Description,    // Optional description
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			internalError(c, "Update marketplace entry", err)
			return
		}
		updated, err := fetchMarketplaceEntry(db, id) // Return the updated joined row
		if err != nil {
			internalError(c, "Update marketplace entry", err)
			return
		}
		response.Success(c, http.StatusOK, "Marketplace entry updated successfully", gin.H{"entry": updated})
	}
}

// DeleteMarketplaceEntryHandler removes an entry, owner or admin only
func DeleteMarketplaceEntryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var existing domain.MarketplaceEntry // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Marketplace entry not found") // Row is absent
				return
			}
			internalError(c, "Delete marketplace entry", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only delete your own marketplace entries")
			return
		}
		// Permanently remove the row
		if err := db.Delete(&existing).Error; err != nil {
			internalError(c, "Delete marketplace entry", err)
			return
		}
		response.Success(c, http.StatusOK, "Marketplace entry deleted successfully", nil)
	}
}
