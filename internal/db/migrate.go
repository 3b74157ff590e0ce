package db

import (
	"bhashaconnect/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates tables, foreign keys, constraints, columns and indexes
// for every platform model
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},             // Users first, every creator FK points here
		&domain.Job{},              // Job listings
		&domain.TrainingContent{},  // Training material
		&domain.MarketplaceEntry{}, // Local business listings
		&domain.Scheme{},           // Government schemes
	)
}
