package domain

import "time"

// Job Model
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Title       string    `gorm:"size:255;not null" json:"title"`        // Job title
	Description string    `gorm:"type:text;not null" json:"description"` // Job description
	Category    string    `gorm:"size:100;not null;index" json:"category"` // Filterable category
	Location    string    `gorm:"size:255;not null;index" json:"location"` // Filterable location
	Language    string    `gorm:"size:50;not null;index" json:"language"`  // Listing language (exact-match filter)
	CreatedBy   uint      `gorm:"not null;index" json:"created_by"`      // Foreign key to User (owner)
	Creator     *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owner relation, cascade on user delete
	CreatedAt   time.Time `json:"created_at"`                            // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"`                            // Timestamp of last update
}
