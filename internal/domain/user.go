package domain

import "time"

// Platform roles
const (
	RoleAdmin        = "admin"        // Full access, owns schemes
	RoleEntrepreneur = "entrepreneur" // May publish training content
	RoleJobseeker    = "jobseeker"    // Default role
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Name      string    `gorm:"size:255;not null" json:"name"`         // Display name, joined into listings
	Email     string    `gorm:"size:255;unique;not null" json:"email"` // Unique login email
	Password  string    `gorm:"size:255;not null" json:"-"`            // Bcrypt hash, never serialized
	Role      string    `gorm:"size:50;default:jobseeker" json:"role"` // Role: admin, entrepreneur or jobseeker
	CreatedAt time.Time `json:"created_at"`                            // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                            // Timestamp of last update
}
