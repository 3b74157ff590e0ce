package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bhashaconnect/internal/api/response" // Uniform response envelope
	"bhashaconnect/internal/domain"       // Importing domain models
	"bhashaconnect/internal/utils"        // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the validated registration payload. Admin accounts are
// seeded, not self-registered.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`            // Display name
	Email    string `json:"email" binding:"required,email,max=255"`           // Unique login email
	Password string `json:"password" binding:"required,min=6,max=72"`         // Plain password, bcrypt caps at 72 bytes
	Role     string `json:"role" binding:"omitempty,oneof=jobseeker entrepreneur"` // Requested role, default jobseeker
}

// LoginRequest is the validated login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`    // Login email
	Password string `json:"password" binding:"required"`       // Plain password
}

// RegisterHandler creates a user and returns a signed token
func RegisterHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			internalError(c, "Register", err)
			return
		}
		role := req.Role // Requested role
		if role == "" {
			role = domain.RoleJobseeker // Default role
		}
		user := domain.User{
			Name:     req.Name,                     // Display name
			Email:    strings.ToLower(req.Email),   // Lowercased to keep uniqueness meaningful
			Password: string(hash),                 // Bcrypt hash
			Role:     role,                         // Resolved role
		}
		var existing domain.User // A taken email is the expected failure
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			response.Error(c, http.StatusBadRequest, "Email already registered")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			internalError(c, "Register", err)
			return
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Lost a race to the same email
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusBadRequest, "Email already registered")
				return
			}
			internalError(c, "Register", err)
			return
		}
		// Issue a token so registration doubles as login
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			internalError(c, "Register", err)
			return
		}
		response.Success(c, http.StatusCreated, "User registered successfully", gin.H{"token": token, "user": user})
	}
}

// LoginHandler authenticates a user and returns a signed token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Enumerate every violated field
			response.ValidationError(c, validationMessages(err))
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			internalError(c, "Login", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"token": token, "user": user})
	}
}

// MeHandler returns the authenticated caller's profile
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := requireUser(c) // Acting user
		if !ok {
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			internalError(c, "Get profile", err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"user": user})
	}
}
