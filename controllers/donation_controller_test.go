package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnifund/AlumniFund/models"
)

func donationTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/webhook", DonationWebhook)
	router.GET("/recent", RecentDonations)
	router.GET("/campaign/:id", CampaignDonations)
	return router
}

func donationPayload(paymentID string, campaignID uint, amount float64, status string) gin.H {
	return gin.H{
		"provider_payment_id": paymentID,
		"campaign_id":         campaignID,
		"amount":              amount,
		"status":              status,
		"donor_name":          "Frank Alum",
		"donor_email":         "frank@example.com",
	}
}

func TestDonationWebhookSignedDelta(t *testing.T) {
	db := setupTestDB(t)
	useTestGateway("http://gateway.invalid")
	router := donationTestRouter()

	owner := createTestUser(t, db, "owner10", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 5000)

	// First sighting in a credited status adds the amount
	w := postJSON(t, router, "/webhook", donationPayload("pay_100", campaign.ID, 100, models.DonationStatusSucceeded), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var campaignAfter models.Campaign
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 100.0, campaignAfter.CurrentAmount)

	// Equal status is a no-op
	w = postJSON(t, router, "/webhook", donationPayload("pay_100", campaign.ID, 100, models.DonationStatusSucceeded), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 100.0, campaignAfter.CurrentAmount)

	// Moving between two credited states does not change the total
	w = postJSON(t, router, "/webhook", donationPayload("pay_100", campaign.ID, 100, models.DonationStatusCompleted), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 100.0, campaignAfter.CurrentAmount)

	// Leaving the credited set subtracts the amount back out
	w = postJSON(t, router, "/webhook", donationPayload("pay_100", campaign.ID, 100, models.DonationStatusFailed), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 0.0, campaignAfter.CurrentAmount)

	// Only one donation row exists throughout
	var donationCount int64
	db.Model(&models.Donation{}).Count(&donationCount)
	assert.Equal(t, int64(1), donationCount)
}

func TestDonationWebhookPendingThenCompleted(t *testing.T) {
	db := setupTestDB(t)
	useTestGateway("http://gateway.invalid")
	router := donationTestRouter()

	owner := createTestUser(t, db, "owner11", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 5000)

	// Pending arrival records the donation without crediting
	w := postJSON(t, router, "/webhook", donationPayload("pay_200", campaign.ID, 250, models.DonationStatusPending), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var campaignAfter models.Campaign
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 0.0, campaignAfter.CurrentAmount)

	w = postJSON(t, router, "/webhook", donationPayload("pay_200", campaign.ID, 250, models.DonationStatusCompleted), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&campaignAfter, campaign.ID).Error)
	assert.Equal(t, 250.0, campaignAfter.CurrentAmount)
}

func TestDonationWebhookUnknownCampaignStillAcks(t *testing.T) {
	db := setupTestDB(t)
	useTestGateway("http://gateway.invalid")
	router := donationTestRouter()

	w := postJSON(t, router, "/webhook", donationPayload("pay_300", 424242, 50, models.DonationStatusCompleted), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var donationCount int64
	db.Model(&models.Donation{}).Count(&donationCount)
	assert.Equal(t, int64(0), donationCount)
}

func TestDonationWebhookUnknownStatusStillAcks(t *testing.T) {
	db := setupTestDB(t)
	useTestGateway("http://gateway.invalid")
	router := donationTestRouter()

	owner := createTestUser(t, db, "owner12", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 5000)

	w := postJSON(t, router, "/webhook", donationPayload("pay_400", campaign.ID, 50, "exploded"), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var donationCount int64
	db.Model(&models.Donation{}).Count(&donationCount)
	assert.Equal(t, int64(0), donationCount)
}
