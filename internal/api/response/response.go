// Package response implements the uniform JSON envelope
// {success, data, message, errors} used by every endpoint.
package response

import (
	"math"     // Ceil for total pages
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Envelope is the uniform response body
type Envelope struct {
	Success bool     `json:"success"`           // Whether the request succeeded
	Message string   `json:"message,omitempty"` // Human-readable outcome message
	Data    gin.H    `json:"data,omitempty"`    // Response payload
	Errors  []string `json:"errors,omitempty"`  // One message per violated field
}

// Pagination block returned by every list endpoint
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`  // Current page number
	TotalPages   int   `json:"totalPages"`   // ceil(totalItems / itemsPerPage)
	TotalItems   int64 `json:"totalItems"`   // Total matching rows
	ItemsPerPage int   `json:"itemsPerPage"` // Page size
}

// NewPagination builds the pagination block for a page of results
func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		CurrentPage:  page,                                                 // Current page number
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),      // Total pages
		TotalItems:   total,                                                // Total matching rows
		ItemsPerPage: limit,                                                // Page size
	}
}

// Success writes a successful envelope with optional message and data
func Success(c *gin.Context, status int, message string, data gin.H) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failed envelope with a message
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// AbortError writes a failed envelope and aborts the handler chain
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// ValidationError writes a 400 envelope enumerating every violated field
func ValidationError(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Validation error", Errors: errs})
}
