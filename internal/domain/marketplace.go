package domain

import "time"

// MarketplaceEntry Model
type MarketplaceEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`                      // Primary key
	BusinessName   string    `gorm:"size:255;not null" json:"business_name"`    // Business name
	OwnerName      string    `gorm:"size:255;not null" json:"owner_name"`       // Business owner display name
	ProductService string    `gorm:"type:text;not null" json:"product_service"` // Offered products/services
	Contact        string    `gorm:"size:255;not null" json:"contact"`          // Free-form contact (phone or email)
	Language       string    `gorm:"size:50;not null;index" json:"language"`    // Listing language (exact-match filter)
	Location       string    `gorm:"size:255;index" json:"location"`            // Optional filterable location
	Description    string    `gorm:"type:text" json:"description"`              // Optional description
	CreatedBy      uint      `gorm:"not null;index" json:"created_by"`          // Foreign key to User (owner)
	Creator        *User     `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owner relation, cascade on user delete
	CreatedAt      time.Time `json:"created_at"`                                // Timestamp of creation
	UpdatedAt      time.Time `json:"updated_at"`                                // Timestamp of last update
}

// TableName keeps the historical table name
func (MarketplaceEntry) TableName() string {
	return "marketplace"
}
