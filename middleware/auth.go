package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogInfo("AuthMiddleware called")

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.LogError("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		if tokenString == authHeader {
			utils.LogError("Invalid Bearer token format")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		// Tokens invalidated by logout are refused until they expire
		var blacklisted models.BlacklistedToken
		if err := config.DB.Where("token = ? AND expires_at > ?", tokenString, time.Now()).First(&blacklisted).Error; err == nil {
			utils.LogError("Blacklisted token used")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has been logged out"})
			c.Abort()
			return
		}

		userID, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.LogError("Invalid token: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
			c.Abort()
			return
		}

		// Get user from database
		utils.LogDebug("Authenticating user ID: %d", userID)

		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			utils.LogError("User not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if user.IsBlocked {
			utils.LogError("Blocked user attempted access: %d", userID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
			c.Abort()
			return
		}

		// Set user in context
		c.Set("user", user)
		utils.LogInfo("User %d authenticated successfully", userID)
		c.Next()
	}
}

// InstitutionMiddleware restricts a route to institution accounts. Must run
// after AuthMiddleware.
func InstitutionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogInfo("InstitutionMiddleware called")

		user, exists := c.Get("user")
		if !exists {
			utils.LogError("User not found in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		userModel, ok := user.(models.User)
		if !ok {
			utils.LogError("Invalid user type in context")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user type"})
			c.Abort()
			return
		}

		if userModel.UserType != models.UserTypeInstitution {
			utils.LogError("Non-institution user attempted institution access: %d", userModel.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Institution access required"})
			c.Abort()
			return
		}

		utils.LogInfo("Institution access granted for user %d", userModel.ID)
		c.Next()
	}
}
