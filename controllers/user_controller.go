package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// currentUser pulls the authenticated user out of the gin context.
func currentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return models.User{}, false
	}
	user, ok := val.(models.User)
	if !ok {
		utils.InternalServerError(c, "Invalid user type in context", nil)
		return models.User{}, false
	}
	return user, true
}

// GetProfile returns the authenticated user's profile
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	utils.LogInfo("Profile requested by user %d", user.ID)
	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user": gin.H{
			"id":              user.ID,
			"username":        user.Username,
			"email":           user.Email,
			"user_type":       user.UserType,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"phone":           user.Phone,
			"graduation_year": user.GraduationYear,
			"profile_image":   user.ProfileImage,
			"created_at":      user.CreatedAt,
		},
	})
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	GraduationYear int    `json:"graduation_year"`
	ProfileImage   string `json:"profile_image"`
}

// UpdateProfile updates the authenticated user's profile fields
func UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Profile update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		if valid, msg := utils.ValidateName(req.FirstName); !valid {
			utils.BadRequest(c, "Invalid first name", msg)
			return
		}
		updates["first_name"] = utils.SanitizeString(req.FirstName)
	}
	if req.LastName != "" {
		if valid, msg := utils.ValidateName(req.LastName); !valid {
			utils.BadRequest(c, "Invalid last name", msg)
			return
		}
		updates["last_name"] = utils.SanitizeString(req.LastName)
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.GraduationYear != 0 {
		updates["graduation_year"] = req.GraduationYear
	}
	if req.ProfileImage != "" {
		updates["profile_image"] = req.ProfileImage
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", "Provide at least one field to update.")
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogError("Profile update failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", err.Error())
		return
	}

	utils.LogInfo("Profile updated for user %d", user.ID)
	utils.Success(c, "Profile updated successfully", gin.H{
		"user": gin.H{
			"id":              user.ID,
			"username":        user.Username,
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"phone":           user.Phone,
			"graduation_year": user.GraduationYear,
		},
	})
}

// GetMyDonations returns the authenticated user's donation history with
// lifetime totals. Totals count only credited donations.
func GetMyDonations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var donations []models.Donation
	if err := config.DB.Preload("Campaign").
		Where("donor_user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch donations for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch donations", err.Error())
		return
	}

	var totalAmount float64
	var totalCount int
	campaigns := make(map[uint]bool)
	for _, donation := range donations {
		if models.Credited(donation.Status) {
			totalAmount += donation.Amount
			totalCount++
			campaigns[donation.CampaignID] = true
		}
	}

	history := make([]gin.H, 0, len(donations))
	for _, donation := range donations {
		history = append(history, gin.H{
			"id":             donation.ID,
			"campaign_id":    donation.CampaignID,
			"campaign_title": donation.Campaign.Title,
			"amount":         donation.Amount,
			"status":         donation.Status,
			"message":        donation.Message,
			"created_at":     donation.CreatedAt,
		})
	}

	utils.LogInfo("Donation history retrieved for user %d: %d records", user.ID, len(donations))
	utils.Success(c, "Donations retrieved successfully", gin.H{
		"donations": history,
		"summary": gin.H{
			"total_donated":       totalAmount,
			"donation_count":      totalCount,
			"campaigns_supported": len(campaigns),
		},
	})
}
