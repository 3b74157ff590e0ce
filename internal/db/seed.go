package db

import (
	"bhashaconnect/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Seed loads the demo accounts and a sample row per resource so a fresh
// install has something to list. All demo accounts share one password.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err // Hashing failure
	}
	users := []domain.User{
		{Name: "Admin User", Email: "admin@bhashaconnect.com", Password: string(hash), Role: domain.RoleAdmin},
		{Name: "Rajesh Kumar", Email: "rajesh@example.com", Password: string(hash), Role: domain.RoleJobseeker},
		{Name: "Priya Sharma", Email: "priya@example.com", Password: string(hash), Role: domain.RoleEntrepreneur},
		{Name: "Amit Patel", Email: "amit@example.com", Password: string(hash), Role: domain.RoleJobseeker},
	}
	// Insert demo accounts
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	admin, entrepreneur := users[0], users[2] // Owners for the sample rows

	jobs := []domain.Job{
		{Title: "Tailoring Assistant", Description: "Assist with stitching and alterations at a local boutique.", Category: "Textile", Location: "Nagpur", Language: "Marathi", CreatedBy: entrepreneur.ID},
		{Title: "Field Sales Executive", Description: "Door-to-door sales of agricultural tools across Vidarbha.", Category: "Sales", Location: "Amravati", Language: "Hindi", CreatedBy: entrepreneur.ID},
	}
	// Insert sample jobs
	if err := db.Create(&jobs).Error; err != nil {
		return err
	}

	training := []domain.TrainingContent{
		{Title: "Basics of Bookkeeping", Type: domain.TrainingTypeVideo, URL: "https://example.com/bookkeeping", Language: "English", Description: "Introductory accounting for small businesses.", CreatedBy: entrepreneur.ID},
		{Title: "Organic Farming Guide", Type: domain.TrainingTypePDF, URL: "https://example.com/organic-farming.pdf", Language: "Varhadi", CreatedBy: admin.ID},
	}
	// Insert sample training content
	if err := db.Create(&training).Error; err != nil {
		return err
	}

	marketplace := []domain.MarketplaceEntry{
		{BusinessName: "Sharma Organic Store", OwnerName: "Priya Sharma", ProductService: "Organic vegetables and grains", Contact: "priya@example.com", Language: "Hindi", Location: "Nagpur", CreatedBy: entrepreneur.ID},
	}
	// Insert sample marketplace entries
	if err := db.Create(&marketplace).Error; err != nil {
		return err
	}

	schemes := []domain.Scheme{
		{Title: "PM Mudra Yojana", Description: "Collateral-free loans for micro and small enterprises.", Eligibility: "Indian citizens running non-farm income generating activities.", Link: "https://www.mudra.org.in", Language: "English", Category: "Finance", IsActive: true},
		{Title: "Skill India Mission", Description: "Vocational training and certification programs nationwide.", Eligibility: "Youth aged 15-45 seeking skill development.", Language: "Hindi", Category: "Training", IsActive: true},
	}
	// Insert sample schemes
	return db.Create(&schemes).Error
}
