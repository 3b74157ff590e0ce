package domain

import "time"

// Allowed training content types
const (
	TrainingTypeVideo       = "video"
	TrainingTypePDF         = "pdf"
	TrainingTypeText        = "text"
	TrainingTypeInfographic = "infographic"
)

// TrainingContent Model
type TrainingContent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Title       string    `gorm:"size:255;not null" json:"title"`       // Content title
	Type        string    `gorm:"size:50;not null;index" json:"type"`   // Content type: video, pdf, text, infographic
	URL         string    `gorm:"type:text;not null" json:"url"`        // Content URL
	Language    string    `gorm:"size:50;not null;index" json:"language"` // Listing language (exact-match filter)
	Description string    `gorm:"type:text" json:"description"`         // Optional description
	CreatedBy   uint      `gorm:"not null;index" json:"created_by"`     // Foreign key to User (owner)
	Creator     *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owner relation, cascade on user delete
	CreatedAt   time.Time `json:"created_at"`                           // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"`                           // Timestamp of last update
}

// TableName keeps the historical table name
func (TrainingContent) TableName() string {
	return "training_content"
}
