package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// CampaignRequest represents the create/update campaign request body
type CampaignRequest struct {
	SchoolID     uint    `json:"school_id" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount" binding:"required"`
	Category     string  `json:"category"`
	Urgency      string  `json:"urgency"`
	Deadline     string  `json:"deadline"`
}

// ListCampaigns returns campaigns, optionally filtered by status, category,
// urgency or school. Public endpoint.
func ListCampaigns(c *gin.Context) {
	query := config.DB.Preload("School").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		if !models.ValidCampaignCategory(category) {
			utils.BadRequest(c, "Invalid category", "Category must be one of: general, scholarship, infrastructure, library, sports, research")
			return
		}
		query = query.Where("category = ?", category)
	}
	if urgency := c.Query("urgency"); urgency != "" {
		if !models.ValidCampaignUrgency(urgency) {
			utils.BadRequest(c, "Invalid urgency", "Urgency must be one of: low, medium, high")
			return
		}
		query = query.Where("urgency = ?", urgency)
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		query = query.Where("school_id = ?", schoolID)
	}

	var campaigns []models.Campaign
	if err := query.Limit(100).Find(&campaigns).Error; err != nil {
		utils.LogError("Failed to fetch campaigns: %v", err)
		utils.InternalServerError(c, "Failed to fetch campaigns", err.Error())
		return
	}

	utils.LogInfo("Listed %d campaigns", len(campaigns))
	utils.Success(c, "Campaigns retrieved successfully", gin.H{
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// GetCampaign returns one campaign with its school. Public endpoint.
func GetCampaign(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid campaign ID", "Campaign ID must be a number")
		return
	}

	var campaign models.Campaign
	if err := config.DB.Preload("School").First(&campaign, uint(campaignID)).Error; err != nil {
		utils.LogError("Campaign not found: %d", campaignID)
		utils.NotFound(c, "Campaign not found")
		return
	}

	progress := 0.0
	if campaign.TargetAmount > 0 {
		progress = campaign.CurrentAmount / campaign.TargetAmount * 100
	}

	utils.Success(c, "Campaign retrieved successfully", gin.H{
		"campaign": campaign,
		"progress": progress,
	})
}

// CreateCampaign opens a fundraising campaign under a school the
// authenticated user owns.
func CreateCampaign(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Campaign creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	var school models.School
	if err := config.DB.First(&school, req.SchoolID).Error; err != nil {
		utils.LogError("Campaign creation failed - School not found: %d", req.SchoolID)
		utils.NotFound(c, "School not found")
		return
	}

	if school.OwnerID != user.ID {
		utils.LogError("User %d attempted to create campaign for school %d owned by %d", user.ID, school.ID, school.OwnerID)
		utils.Forbidden(c, "You do not own this school")
		return
	}

	req.Title = utils.SanitizeString(req.Title)
	if err := utils.ValidateStringLength(req.Title, 3, 200); err != nil {
		utils.BadRequest(c, "Invalid campaign title", err.Error())
		return
	}
	if err := utils.ValidateAmount(req.TargetAmount); err != nil {
		utils.BadRequest(c, "Invalid target amount", err.Error())
		return
	}

	if req.Category == "" {
		req.Category = models.CampaignCategoryGeneral
	}
	if !models.ValidCampaignCategory(req.Category) {
		utils.LogError("Campaign creation failed - Invalid category: %s", req.Category)
		utils.BadRequest(c, "Invalid category", "Category must be one of: general, scholarship, infrastructure, library, sports, research")
		return
	}

	if req.Urgency == "" {
		req.Urgency = models.CampaignUrgencyMedium
	}
	if !models.ValidCampaignUrgency(req.Urgency) {
		utils.LogError("Campaign creation failed - Invalid urgency: %s", req.Urgency)
		utils.BadRequest(c, "Invalid urgency", "Urgency must be one of: low, medium, high")
		return
	}

	var deadline time.Time
	if req.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			utils.BadRequest(c, "Invalid deadline", "Deadline must be in YYYY-MM-DD format")
			return
		}
		if parsed.Before(time.Now()) {
			utils.BadRequest(c, "Invalid deadline", "Deadline must be in the future")
			return
		}
		deadline = parsed
	}

	campaign := models.Campaign{
		SchoolID:     school.ID,
		Title:        req.Title,
		Description:  utils.SanitizeString(req.Description),
		TargetAmount: req.TargetAmount,
		Status:       models.CampaignStatusActive,
		Category:     req.Category,
		Urgency:      req.Urgency,
		Deadline:     deadline,
	}
	if err := config.DB.Create(&campaign).Error; err != nil {
		utils.LogError("Failed to create campaign for school %d: %v", school.ID, err)
		utils.InternalServerError(c, "Failed to create campaign", err.Error())
		return
	}

	utils.LogInfo("Campaign %d created for school %d by user %d", campaign.ID, school.ID, user.ID)
	utils.Created(c, "Campaign created successfully", gin.H{"campaign": campaign})
}

// UpdateCampaignRequest represents the campaign update request body
type UpdateCampaignRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount"`
	Status       string  `json:"status"`
	Category     string  `json:"category"`
	Urgency      string  `json:"urgency"`
	Deadline     string  `json:"deadline"`
}

// UpdateCampaign modifies a campaign. Only the owner of the campaign's
// school may update it. CurrentAmount is never client-writable.
func UpdateCampaign(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid campaign ID", "Campaign ID must be a number")
		return
	}

	var campaign models.Campaign
	if err := config.DB.Preload("School").First(&campaign, uint(campaignID)).Error; err != nil {
		utils.LogError("Campaign not found: %d", campaignID)
		utils.NotFound(c, "Campaign not found")
		return
	}

	if campaign.School.OwnerID != user.ID {
		utils.LogError("User %d attempted to update campaign %d owned by %d", user.ID, campaign.ID, campaign.School.OwnerID)
		utils.Forbidden(c, "You do not own this campaign")
		return
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Campaign update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		title := utils.SanitizeString(req.Title)
		if err := utils.ValidateStringLength(title, 3, 200); err != nil {
			utils.BadRequest(c, "Invalid campaign title", err.Error())
			return
		}
		updates["title"] = title
	}
	if req.Description != "" {
		updates["description"] = utils.SanitizeString(req.Description)
	}
	if req.TargetAmount != 0 {
		if err := utils.ValidateAmount(req.TargetAmount); err != nil {
			utils.BadRequest(c, "Invalid target amount", err.Error())
			return
		}
		updates["target_amount"] = req.TargetAmount
	}
	if req.Status != "" {
		switch req.Status {
		case models.CampaignStatusActive, models.CampaignStatusCompleted, models.CampaignStatusCancelled:
			updates["status"] = req.Status
		default:
			utils.BadRequest(c, "Invalid status", "Status must be one of: active, completed, cancelled")
			return
		}
	}
	if req.Category != "" {
		if !models.ValidCampaignCategory(req.Category) {
			utils.BadRequest(c, "Invalid category", "Category must be one of: general, scholarship, infrastructure, library, sports, research")
			return
		}
		updates["category"] = req.Category
	}
	if req.Urgency != "" {
		if !models.ValidCampaignUrgency(req.Urgency) {
			utils.BadRequest(c, "Invalid urgency", "Urgency must be one of: low, medium, high")
			return
		}
		updates["urgency"] = req.Urgency
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			utils.BadRequest(c, "Invalid deadline", "Deadline must be in YYYY-MM-DD format")
			return
		}
		updates["deadline"] = deadline
	}

	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", "Provide at least one field to update.")
		return
	}

	if err := config.DB.Model(&campaign).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to update campaign", err.Error())
		return
	}

	utils.LogInfo("Campaign %d updated by user %d", campaign.ID, user.ID)
	utils.Success(c, "Campaign updated successfully", gin.H{"campaign": campaign})
}

// DeleteCampaign cancels and soft-deletes a campaign. Only the owner of the
// campaign's school may delete it.
func DeleteCampaign(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid campaign ID", "Campaign ID must be a number")
		return
	}

	var campaign models.Campaign
	if err := config.DB.Preload("School").First(&campaign, uint(campaignID)).Error; err != nil {
		utils.LogError("Campaign not found: %d", campaignID)
		utils.NotFound(c, "Campaign not found")
		return
	}

	if campaign.School.OwnerID != user.ID {
		utils.LogError("User %d attempted to delete campaign %d owned by %d", user.ID, campaign.ID, campaign.School.OwnerID)
		utils.Forbidden(c, "You do not own this campaign")
		return
	}

	if err := config.DB.Model(&campaign).Update("status", models.CampaignStatusCancelled).Error; err != nil {
		utils.LogError("Failed to cancel campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to delete campaign", err.Error())
		return
	}
	if err := config.DB.Delete(&campaign).Error; err != nil {
		utils.LogError("Failed to delete campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to delete campaign", err.Error())
		return
	}

	utils.LogInfo("Campaign %d deleted by user %d", campaign.ID, user.ID)
	utils.Success(c, "Campaign deleted successfully", nil)
}

// GetCampaignDonors returns the credited donations for a campaign together
// with aggregates computed server-side.
func GetCampaignDonors(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid campaign ID", "Campaign ID must be a number")
		return
	}

	var campaign models.Campaign
	if err := config.DB.First(&campaign, uint(campaignID)).Error; err != nil {
		utils.LogError("Campaign not found: %d", campaignID)
		utils.NotFound(c, "Campaign not found")
		return
	}

	var donations []models.Donation
	if err := config.DB.
		Where("campaign_id = ? AND status IN ?", campaign.ID,
			[]string{models.DonationStatusSucceeded, models.DonationStatusCompleted}).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch donors for campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to fetch donors", err.Error())
		return
	}

	var totalAmount float64
	distinctDonors := make(map[string]bool)
	donors := make([]gin.H, 0, len(donations))
	for _, donation := range donations {
		totalAmount += donation.Amount
		// Distinct by donor identity, not display name
		donorKey := donation.DonorEmail
		if donation.DonorUserID != nil {
			donorKey = fmt.Sprintf("user_%d", *donation.DonorUserID)
		}
		distinctDonors[donorKey] = true
		donors = append(donors, gin.H{
			"donor_name": donation.DonorName,
			"amount":     donation.Amount,
			"message":    donation.Message,
			"created_at": donation.CreatedAt,
		})
	}

	utils.Success(c, "Donors retrieved successfully", gin.H{
		"donors":         donors,
		"donation_count": len(donors),
		"donor_count":    len(distinctDonors),
		"total_amount":   totalAmount,
	})
}
