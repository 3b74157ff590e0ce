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

// TrainingRequest is the validated create/update payload
type TrainingRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`                      // Content title
	Type        string `json:"type" binding:"required,oneof=video pdf text infographic"`    // Content type
	URL         string `json:"url" binding:"required,url"`                                  // Content URL
	Language    string `json:"language" binding:"required,min=2,max=50"`                    // Listing language
	Description string `json:"description" binding:"omitempty,max=1000"`                    // Optional description
}

// TrainingWithCreator is a content row joined with its creator's display name
type TrainingWithCreator struct {
	domain.TrainingContent
	CreatedByName string `gorm:"column:created_by_name" json:"created_by_name"` // Creator display name
}

// trainingFilters are the optional listing filters, applied identically to
// the count query and the page query
type trainingFilters struct {
	Type     string // Exact match
	Language string // Exact match
}

// apply adds the filter predicates to a query
func (f trainingFilters) apply(q *gorm.DB) *gorm.DB {
	if f.Type != "" {
		q = q.Where("training_content.type = ?", f.Type) // Filter by exact type
	}
	if f.Language != "" {
		q = q.Where("training_content.language = ?", f.Language) // Filter by exact language
	}
	return q
}

// trainingSelect builds the base query joining the creator's name
func trainingSelect(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.TrainingContent{}).
		Select("training_content.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = training_content.created_by")
}

// fetchTraining loads one content row with its creator's name
func fetchTraining(db *gorm.DB, id uint) (*TrainingWithCreator, error) {
	var row TrainingWithCreator
	if err := trainingSelect(db).Where("training_content.id = ?", id).Take(&row).Error; err != nil {
		return nil, err // Not found or query failure
	}
	return &row, nil
}

// ListTrainingHandler returns a filtered, paginated content listing
func ListTrainingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Cache key covers every parameter that shapes the listing
		cacheKey := listCacheKey("training", c, "type", "language", "page", "limit")
		var cached struct {
			TrainingContent []TrainingWithCreator `json:"trainingContent"` // Page of content
			Pagination      response.Pagination   `json:"pagination"`      // Pagination block
		}
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			response.Success(c, http.StatusOK, "", gin.H{"trainingContent": cached.TrainingContent, "pagination": cached.Pagination})
			return
		}
		filters := trainingFilters{
			Type:     c.Query("type"),     // Optional exact type
			Language: c.Query("language"), // Optional exact language
		}
		page, limit := parsePageLimit(c) // Pagination parameters
		var total int64                  // Total matching rows
		// Count with the same predicates as the page query
		if err := filters.apply(db.Model(&domain.TrainingContent{})).Count(&total).Error; err != nil {
			internalError(c, "Count training content", err)
			return
		}
		rows := make([]TrainingWithCreator, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(trainingSelect(db)).
			Order("training_content.created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get training content", err)
			return
		}
		data := gin.H{"trainingContent": rows, "pagination": response.NewPagination(page, limit, total)}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, data, listCacheTTL)
		response.Success(c, http.StatusOK, "", data)
	}
}

// GetTrainingHandler returns a single content row by id
func GetTrainingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		content, err := fetchTraining(db, id) // Load the joined row
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Training content not found") // Row is absent
				return
			}
			internalError(c, "Get training content", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"content": content})
	}
}

// GetTrainingByTypeHandler returns content of one type, optionally filtered
// by language
func GetTrainingByTypeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := trainingFilters{
			Type:     c.Param("type"),     // Required path parameter
			Language: c.Query("language"), // Optional exact language
		}
		page, limit := parsePageLimit(c)       // Pagination parameters
		rows := make([]TrainingWithCreator, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(trainingSelect(db)).
			Order("training_content.created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get training content by type", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"content": rows})
	}
}

// CreateTrainingHandler creates content owned by the authenticated caller.
// Role gating (entrepreneur or admin) happens in the route middleware.
func CreateTrainingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		var req TrainingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		content := domain.TrainingContent{
			Title:       req.Title,       // Content title
			Type:        req.Type,        // Content type
			URL:         req.URL,         // Content URL
			Language:    req.Language,    // Listing language
			Description: req.Description, // Optional description
			CreatedBy:   userID,          // Stamp the caller as owner
		}
		// Insert the row
		if err := db.Create(&content).Error; err != nil {
			internalError(c, "Create training content", err)
			return
		}
		created, err := fetchTraining(db, content.ID) // Return the freshly joined row
		if err != nil {
			internalError(c, "Create training content", err)
			return
		}
		response.Success(c, http.StatusCreated, "Training content created successfully", gin.H{"content": created})
	}
}

// UpdateTrainingHandler overwrites a content row's fields, owner or admin only
func UpdateTrainingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var req TrainingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		var existing domain.TrainingContent // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Training content not found") // Row is absent
				return
			}
			internalError(c, "Update training content", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only update your own training content")
			return
		}
		// Overwrite all validated fields
		updates := map[string]any{
			"title":       req.Title,       // Content title
			"type":        req.Type,        // Content type
			"url":         req.URL,         // Content URL
			"language":    req.Language,    // Listing language
			"description": req.Description, // Optional description
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			internalError(c, "Update training content", err)
			return
		}
		updated, err := fetchTraining(db, id) // Return the updated joined row
		if err != nil {
			internalError(c, "Update training content", err)
			return
		}
		response.Success(c, http.StatusOK, "Training content updated successfully", gin.H{"content": updated})
	}
}

// DeleteTrainingHandler removes a content row, owner or admin only
func DeleteTrainingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var existing domain.TrainingContent // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Training content not found") // Row is absent
				return
			}
			internalError(c, "Delete training content", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only delete your own training content")
			return
		}
		// Permanently remove the row
		if err := db.Delete(&existing).Error; err != nil {
			internalError(c, "Delete training content", err)
			return
		}
		response.Success(c, http.StatusOK, "Training content deleted successfully", nil)
	}
}
