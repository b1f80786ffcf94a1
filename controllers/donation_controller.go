package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// DonationWebhookRequest is the provider's direct donation notification,
// keyed by the provider's payment id rather than our order id.
type DonationWebhookRequest struct {
	ProviderPaymentID string  `json:"provider_payment_id"`
	CampaignID        uint    `json:"campaign_id"`
	Amount            float64 `json:"amount"`
	Status            string  `json:"status"`
	DonorName         string  `json:"donor_name"`
	DonorEmail        string  `json:"donor_email"`
	Message           string  `json:"message"`
}

// DonationWebhook records or updates a donation reported directly by the
// provider. The campaign total moves by a signed delta: +amount when the
// donation enters the credited set, -amount when it leaves. Equal statuses
// are a no-op. Always acknowledges with 200.
func DonationWebhook(c *gin.Context) {
	var req DonationWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Donation webhook - Malformed payload: %v", err)
		utils.Ack(c)
		return
	}
	if req.ProviderPaymentID == "" {
		utils.LogError("Donation webhook - Missing provider payment id")
		utils.Ack(c)
		return
	}

	utils.LogInfo("Donation webhook received: payment=%s status=%s", req.ProviderPaymentID, req.Status)

	switch req.Status {
	case models.DonationStatusPending, models.DonationStatusSucceeded,
		models.DonationStatusCompleted, models.DonationStatusFailed:
	default:
		utils.LogError("Donation webhook - Unknown status %s for payment %s", req.Status, req.ProviderPaymentID)
		utils.Ack(c)
		return
	}

	var existing models.Donation
	err := config.DB.Where("provider_payment_id = ?", req.ProviderPaymentID).First(&existing).Error

	if err != nil {
		// First sighting of this payment: record it
		var campaign models.Campaign
		if err := config.DB.First(&campaign, req.CampaignID).Error; err != nil {
			utils.LogError("Donation webhook - Unknown campaign %d for payment %s", req.CampaignID, req.ProviderPaymentID)
			utils.Ack(c)
			return
		}
		if req.Amount <= 0 {
			utils.LogError("Donation webhook - Invalid amount %f for payment %s", req.Amount, req.ProviderPaymentID)
			utils.Ack(c)
			return
		}

		donorName := req.DonorName
		if donorName == "" {
			donorName = "Anonymous"
		}
		donation := models.Donation{
			CampaignID:        campaign.ID,
			DonorName:         utils.SanitizeString(donorName),
			DonorEmail:        req.DonorEmail,
			Amount:            req.Amount,
			Status:            req.Status,
			ProviderPaymentID: req.ProviderPaymentID,
			Message:           utils.SanitizeString(req.Message),
		}

		txErr := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&donation).Error; err != nil {
				return err
			}
			if models.Credited(donation.Status) {
				if err := tx.Model(&models.Campaign{}).
					Where("id = ?", campaign.ID).
					Update("current_amount", gorm.Expr("current_amount + ?", donation.Amount)).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			utils.LogError("Donation webhook - Failed to record payment %s: %v", req.ProviderPaymentID, txErr)
			utils.Ack(c)
			return
		}

		utils.LogInfo("Donation webhook - Recorded donation %d (%s) for campaign %d", donation.ID, donation.Status, campaign.ID)
		if models.Credited(donation.Status) {
			notifyDonationCredited(donation)
		}
		utils.Ack(c)
		return
	}

	if existing.Status == req.Status {
		utils.LogInfo("Donation webhook - Payment %s already in status %s, duplicate delivery", req.ProviderPaymentID, req.Status)
		utils.Ack(c)
		return
	}

	wasCredited := models.Credited(existing.Status)
	nowCredited := models.Credited(req.Status)

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Update("status", req.Status).Error; err != nil {
			return err
		}
		if nowCredited && !wasCredited {
			return tx.Model(&models.Campaign{}).
				Where("id = ?", existing.CampaignID).
				Update("current_amount", gorm.Expr("current_amount + ?", existing.Amount)).Error
		}
		if !nowCredited && wasCredited {
			return tx.Model(&models.Campaign{}).
				Where("id = ?", existing.CampaignID).
				Update("current_amount", gorm.Expr("current_amount - ?", existing.Amount)).Error
		}
		return nil
	})
	if txErr != nil {
		utils.LogError("Donation webhook - Failed to update payment %s: %v", req.ProviderPaymentID, txErr)
		utils.Ack(c)
		return
	}

	utils.LogInfo("Donation webhook - Payment %s moved %s -> %s", req.ProviderPaymentID, existing.Status, req.Status)
	if nowCredited && !wasCredited {
		existing.Status = req.Status
		notifyDonationCredited(existing)
	}
	utils.Ack(c)
}

// RecentDonations returns the latest credited donations across all
// campaigns, for the public activity feed.
func RecentDonations(c *gin.Context) {
	var donations []models.Donation
	if err := config.DB.Preload("Campaign").
		Where("status IN ?", []string{models.DonationStatusSucceeded, models.DonationStatusCompleted}).
		Order("created_at DESC").
		Limit(20).
		Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch recent donations: %v", err)
		utils.InternalServerError(c, "Failed to fetch donations", err.Error())
		return
	}

	feed := make([]gin.H, 0, len(donations))
	for _, donation := range donations {
		feed = append(feed, gin.H{
			"donor_name":     donation.DonorName,
			"amount":         donation.Amount,
			"message":        donation.Message,
			"campaign_id":    donation.CampaignID,
			"campaign_title": donation.Campaign.Title,
			"created_at":     donation.CreatedAt,
		})
	}

	utils.Success(c, "Recent donations retrieved successfully", gin.H{"donations": feed})
}

// CampaignDonations returns the credited donations for one campaign, for
// the campaign page's donation list.
func CampaignDonations(c *gin.Context) {
	var campaign models.Campaign
	if err := config.DB.First(&campaign, c.Param("id")).Error; err != nil {
		utils.LogError("Campaign not found: %s", c.Param("id"))
		utils.NotFound(c, "Campaign not found")
		return
	}

	var donations []models.Donation
	if err := config.DB.
		Where("campaign_id = ? AND status IN ?", campaign.ID,
			[]string{models.DonationStatusSucceeded, models.DonationStatusCompleted}).
		Order("created_at DESC").
		Limit(50).
		Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch donations for campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to fetch donations", err.Error())
		return
	}

	feed := make([]gin.H, 0, len(donations))
	for _, donation := range donations {
		feed = append(feed, gin.H{
			"donor_name": donation.DonorName,
			"amount":     donation.Amount,
			"message":    donation.Message,
			"created_at": donation.CreatedAt,
		})
	}

	utils.Success(c, "Donations retrieved successfully", gin.H{
		"campaign_id": campaign.ID,
		"donations":   feed,
	})
}

// LiveDonations upgrades the connection and subscribes it to the live
// donation feed.
func LiveDonations(c *gin.Context) {
	if liveFeed == nil {
		utils.InternalServerError(c, "Live feed unavailable", nil)
		return
	}
	liveFeed.HandleWS(c)
}
