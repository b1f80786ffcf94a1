package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	UserType        string `json:"user_type"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	GraduationYear  int    `json:"graduation_year"`
}

// RegisterUser handles user registration
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", "Please check your input data and ensure all required fields are provided correctly.")
		return
	}

	utils.LogInfo("Registration attempt for email: %s, username: %s", req.Email, req.Username)

	// Validate username
	if valid, msg := utils.ValidateUsername(req.Username); !valid {
		utils.LogError("Registration attempt failed - Invalid username: %s - %s", req.Username, msg)
		utils.BadRequest(c, "Invalid username", msg)
		return
	}

	// Validate email
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Registration attempt failed - Invalid email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	// Validate password
	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.LogError("Registration attempt failed - Invalid password for email: %s - %s", req.Email, msg)
		utils.BadRequest(c, "Invalid password", msg)
		return
	}

	// Confirm password match
	if req.Password != req.ConfirmPassword {
		utils.LogError("Registration attempt failed - Passwords do not match for email: %s", req.Email)
		utils.BadRequest(c, "Passwords do not match", "Password and confirm password must be the same.")
		return
	}

	// Default to an alumni donor account
	if req.UserType == "" {
		req.UserType = models.UserTypeAlumni
	}
	if req.UserType != models.UserTypeAlumni && req.UserType != models.UserTypeInstitution {
		utils.LogError("Registration attempt failed - Invalid user type: %s", req.UserType)
		utils.BadRequest(c, "Invalid user type", "User type must be either alumni or institution.")
		return
	}

	// Validate first name if provided
	if req.FirstName != "" {
		if valid, msg := utils.ValidateName(req.FirstName); !valid {
			utils.LogError("Registration attempt failed - Invalid first name: %s - %s", req.FirstName, msg)
			utils.BadRequest(c, "Invalid first name", msg)
			return
		}
	}

	// Validate last name if provided
	if req.LastName != "" {
		if valid, msg := utils.ValidateName(req.LastName); !valid {
			utils.LogError("Registration attempt failed - Invalid last name: %s - %s", req.LastName, msg)
			utils.BadRequest(c, "Invalid last name", msg)
			return
		}
	}

	// Check if username already exists
	var existingUser models.User
	if err := config.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		utils.LogError("Registration attempt failed - Username already exists: %s", req.Username)
		utils.Conflict(c, "Username already exists", "The username you've chosen is already taken. Please choose a different username.")
		return
	}

	// Check if email already exists
	if err := config.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.LogError("Registration attempt failed - Email already exists: %s", req.Email)
		utils.Conflict(c, "Email already exists", "An account with this email address already exists. Please use a different email or try logging in.")
		return
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Registration attempt failed - Password hashing error for email: %s - %v", req.Email, err)
		utils.InternalServerError(c, "Failed to process password", "An error occurred while securing your password. Please try again later.")
		return
	}

	user := models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		UserType:       req.UserType,
		FirstName:      utils.SanitizeString(req.FirstName),
		LastName:       utils.SanitizeString(req.LastName),
		Phone:          req.Phone,
		GraduationYear: req.GraduationYear,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user account: %s - %v", req.Email, err)
		utils.InternalServerError(c, "Failed to create user account", err.Error())
		return
	}

	utils.LogInfo("User registered successfully: %s", req.Email)
	utils.Created(c, "Registration successful", gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"user_type": user.UserType,
		},
	})
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid email or password", err.Error())
		return
	}

	// Sanitize input
	req.Email = utils.SanitizeString(req.Email)

	// Validate email
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.LogError("Login attempt failed - Invalid email format: %s", req.Email)
		utils.BadRequest(c, "Invalid email", msg)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("Login attempt failed - User not found: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Login attempt failed - Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Login attempt failed - Blocked account: %s", req.Email)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	// Update last login
	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login time for user: %s", req.Email)
	}

	// Generate JWT token
	tokenString, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate JWT token for user: %s", req.Email)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User logged in successfully: %s", req.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString, "user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"user_type": user.UserType,
		},
	})
}

// LogoutUser blacklists the presented token so it cannot be replayed before
// its natural expiry.
func LogoutUser(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
	if tokenString == "" || tokenString == authHeader {
		utils.LogError("Logout attempt failed - Missing bearer token")
		utils.Unauthorized(c, "Please login for access")
		return
	}

	// Tokens expire after 24h; keep the blacklist entry around at least that long
	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil {
		utils.LogError("Failed to blacklist token: %v", err)
		utils.InternalServerError(c, "Failed to logout", err.Error())
		return
	}

	utils.LogInfo("User logged out successfully")
	utils.Success(c, "Logged out successfully", nil)
}
