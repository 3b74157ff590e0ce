package domain

import "time"

// Scheme Model (admin-owned, no creator relation)
type Scheme struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Title       string    `gorm:"size:255;not null" json:"title"`         // Scheme title
	Description string    `gorm:"type:text;not null" json:"description"`  // Scheme description
	Eligibility string    `gorm:"type:text;not null" json:"eligibility"`  // Eligibility criteria
	Link        string    `gorm:"type:text" json:"link"`                  // Optional official link
	Language    string    `gorm:"size:50;not null;index" json:"language"` // Listing language (exact-match filter)
	Category    string    `gorm:"size:100;index" json:"category"`         // Optional filterable category
	IsActive    bool      `gorm:"index" json:"is_active"`                 // Visibility flag, not a deletion marker; request layer defaults it to true
	CreatedAt   time.Time `json:"created_at"`                             // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"`                             // Timestamp of last update
}
