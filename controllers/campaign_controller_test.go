package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnifund/AlumniFund/middleware"
	"github.com/alumnifund/AlumniFund/models"
)

func campaignTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/campaigns/:id/donors", GetCampaignDonors)
	managed := router.Group("")
	managed.Use(middleware.AuthMiddleware(), middleware.InstitutionMiddleware())
	{
		managed.POST("/campaigns", CreateCampaign)
		managed.PUT("/campaigns/:id", UpdateCampaign)
	}
	return router
}

func TestCreateCampaignValidatesEnums(t *testing.T) {
	db := setupTestDB(t)
	router := campaignTestRouter()

	owner := createTestUser(t, db, "owner30", models.UserTypeInstitution)
	school := models.School{OwnerID: owner.ID, Name: "Ogdenville Academy"}
	require.NoError(t, db.Create(&school).Error)
	header := map[string]string{"Authorization": authHeader(t, owner)}

	w := postJSON(t, router, "/campaigns", gin.H{
		"school_id":     school.ID,
		"title":         "Gym Renovation",
		"target_amount": 5000,
		"category":      "crypto",
	}, header)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/campaigns", gin.H{
		"school_id":     school.ID,
		"title":         "Gym Renovation",
		"target_amount": 5000,
		"urgency":       "apocalyptic",
	}, header)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, router, "/campaigns", gin.H{
		"school_id":     school.ID,
		"title":         "Gym Renovation",
		"target_amount": 5000,
		"category":      models.CampaignCategorySports,
		"urgency":       models.CampaignUrgencyHigh,
	}, header)
	require.Equal(t, http.StatusCreated, w.Code)

	var campaign models.Campaign
	require.NoError(t, db.Where("title = ?", "Gym Renovation").First(&campaign).Error)
	assert.Equal(t, models.CampaignCategorySports, campaign.Category)
	assert.Equal(t, 0.0, campaign.CurrentAmount)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
}

func TestCreateCampaignRequiresSchoolOwnership(t *testing.T) {
	db := setupTestDB(t)
	router := campaignTestRouter()

	owner := createTestUser(t, db, "owner31", models.UserTypeInstitution)
	other := createTestUser(t, db, "other31", models.UserTypeInstitution)
	school := models.School{OwnerID: owner.ID, Name: "North Haverbrook High"}
	require.NoError(t, db.Create(&school).Error)

	w := postJSON(t, router, "/campaigns", gin.H{
		"school_id":     school.ID,
		"title":         "Unauthorized Drive",
		"target_amount": 1000,
	}, map[string]string{"Authorization": authHeader(t, other)})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateCampaignIgnoresCurrentAmount(t *testing.T) {
	db := setupTestDB(t)
	router := campaignTestRouter()

	owner := createTestUser(t, db, "owner32", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 1000)
	require.NoError(t, db.Model(&campaign).Update("current_amount", 400).Error)

	w := putJSON(t, router, "/campaigns/1", gin.H{
		"title":          "New Library Wing II",
		"current_amount": 999999,
	}, authHeader(t, owner))
	require.Equal(t, http.StatusOK, w.Code)

	var after models.Campaign
	require.NoError(t, db.First(&after, campaign.ID).Error)
	assert.Equal(t, "New Library Wing II", after.Title)
	assert.Equal(t, 400.0, after.CurrentAmount)
}

func TestGetCampaignDonorsAggregates(t *testing.T) {
	db := setupTestDB(t)
	router := campaignTestRouter()

	owner := createTestUser(t, db, "owner33", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 1000)

	donations := []models.Donation{
		{CampaignID: campaign.ID, DonorName: "A", Amount: 100, Status: models.DonationStatusCompleted, ProviderPaymentID: "d1"},
		{CampaignID: campaign.ID, DonorName: "B", Amount: 200, Status: models.DonationStatusSucceeded, ProviderPaymentID: "d2"},
		{CampaignID: campaign.ID, DonorName: "C", Amount: 999, Status: models.DonationStatusFailed, ProviderPaymentID: "d3"},
		{CampaignID: campaign.ID, DonorName: "D", Amount: 50, Status: models.DonationStatusPending, ProviderPaymentID: "d4"},
	}
	for i := range donations {
		require.NoError(t, db.Create(&donations[i]).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/campaigns/1/donors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			DonationCount int     `json:"donation_count"`
			TotalAmount   float64 `json:"total_amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.DonationCount)
	assert.Equal(t, 300.0, resp.Data.TotalAmount)
}
