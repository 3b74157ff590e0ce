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

// JobRequest is the validated create/update payload
type JobRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`    // Job title
	Description string `json:"description" binding:"required,min=10"`     // Job description
	Category    string `json:"category" binding:"required,min=2,max=100"` // Job category
	Location    string `json:"location" binding:"required,min=2,max=255"` // Job location
	Language    string `json:"language" binding:"required,min=2,max=50"`  // Listing language
}

// JobWithCreator is a job row joined with its creator's display name
type JobWithCreator struct {
	domain.Job
	CreatedByName string `gorm:"column:created_by_name" json:"created_by_name"` // Creator display name
}

// jobFilters are the optional listing filters, applied identically to the
// count query and the page query
type jobFilters struct {
	Category string // Substring match
	Location string // Substring match
	Language string // Exact match
}

// apply adds the filter predicates to a query
func (f jobFilters) apply(q *gorm.DB) *gorm.DB {
	if f.Category != "" {
		q = q.Where("jobs.category LIKE ?", "%"+f.Category+"%") // Filter by category substring
	}
	if f.Location != "" {
		q = q.Where("jobs.location LIKE ?", "%"+f.Location+"%") // Filter by location substring
	}
	if f.Language != "" {
		q = q.Where("jobs.language = ?", f.Language) // Filter by exact language
	}
	return q
}

// jobSelect builds the base query joining the creator's name
func jobSelect(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Job{}).
		Select("jobs.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = jobs.created_by")
}

// fetchJob loads one job with its creator's name
func fetchJob(db *gorm.DB, id uint) (*JobWithCreator, error) {
	var row JobWithCreator
	if err := jobSelect(db).Where("jobs.id = ?", id).Take(&row).Error; err != nil {
		return nil, err // Not found or query failure
	}
	return &row, nil
}

// ListJobsHandler returns a filtered, paginated job listing
func ListJobsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Cache key covers every parameter that shapes the listing
		cacheKey := listCacheKey("jobs", c, "category", "location", "language", "page", "limit")
		var cached struct {
			Jobs       []JobWithCreator    `json:"jobs"`       // Page of jobs
			Pagination response.Pagination `json:"pagination"` // Pagination block
		}
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			response.Success(c, http.StatusOK, "", gin.H{"jobs": cached.Jobs, "pagination": cached.Pagination})
			return
		}
		filters := jobFilters{
			Category: c.Query("category"), // Optional category substring
			Location: c.Query("location"), // Optional location substring
			Language: c.Query("language"), // Optional exact language
		}
		page, limit := parsePageLimit(c) // Pagination parameters
		var total int64                  // Total matching rows
		// Count with the same predicates as the page query
		if err := filters.apply(db.Model(&domain.Job{})).Count(&total).Error; err != nil {
			internalError(c, "Count jobs", err)
			return
		}
		rows := make([]JobWithCreator, 0) // Page of results, empty not null
		// Fetch the page, newest first
		if err := filters.apply(jobSelect(db)).
			Order("jobs.created_at DESC").
			Offset((page - 1) * limit).Limit(limit).
			Find(&rows).Error; err != nil {
			internalError(c, "Get jobs", err)
			return
		}
		data := gin.H{"jobs": rows, "pagination": response.NewPagination(page, limit, total)}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, data, listCacheTTL)
		response.Success(c, http.StatusOK, "", data)
	}
}

// GetJobHandler returns a single job by id
func GetJobHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		job, err := fetchJob(db, id) // Load the joined row
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Job not found") // Row is absent
				return
			}
			internalError(c, "Get job", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"job": job})
	}
}

// CreateJobHandler creates a job owned by the authenticated caller
func CreateJobHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		var req JobRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		job := domain.Job{
			Title:       req.Title,       // Job title
			Description: req.Description, // Job description
			Category:    req.Category,    // Job category
			Location:    req.Location,    // Job location
			Language:    req.Language,    // Listing language
			CreatedBy:   userID,          // Stamp the caller as owner
		}
		// Insert the row
		if err := db.Create(&job).Error; err != nil {
			internalError(c, "Create job", err)
			return
		}
		created, err := fetchJob(db, job.ID) // Return the freshly joined row
		if err != nil {
			internalError(c, "Create job", err)
			return
		}
		response.Success(c, http.StatusCreated, "Job created successfully", gin.H{"job": created})
	}
}

// UpdateJobHandler overwrites a job's fields, owner or admin only
func UpdateJobHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var req JobRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		var existing domain.Job // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Job not found") // Row is absent
				return
			}
			internalError(c, "Update job", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only update your own jobs")
			return
		}
		// Overwrite all validated fields
		updates := map[string]any{
			"title":       req.Title,       // Job title
			"description": req.Description, // Job description
			"category":    req.Category,    // Job category
			"location":    req.Location,    // Job location
			"language":    req.Language,    // Listing language
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			internalError(c, "Update job", err)
			return
		}
		updated, err := fetchJob(db, id) // Return the updated joined row
		if err != nil {
			internalError(c, "Update job", err)
			return
		}
		response.Success(c, http.StatusOK, "Job updated successfully", gin.H{"job": updated})
	}
}

// DeleteJobHandler removes a job, owner or admin only
func DeleteJobHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		id, ok := parseID(c) // Parse the :id parameter
		if !ok {
			return
		}
		var existing domain.Job // Check existence before ownership
		if err := db.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Job not found") // Row is absent
				return
			}
			internalError(c, "Delete job", err)
			return
		}
		// Owner or admin only
		if !authz.CanModify(userID, role, existing.CreatedBy) {
			response.Error(c, http.StatusForbidden, "You can only delete your own jobs")
			return
		}
		// Permanently remove the row
		if err := db.Delete(&existing).Error; err != nil {
			internalError(c, "Delete job", err)
			return
		}
		response.Success(c, http.StatusOK, "Job deleted successfully", nil)
	}
}
