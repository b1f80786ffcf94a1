package controllers

import (
	"fmt"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

var testDBSeq int

// setupTestDB opens a fresh in-memory database and points the global
// connection at it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	config.DB = db
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, userType string) models.User {
	t.Helper()

	hashed, err := utils.HashPassword("Password1")
	require.NoError(t, err)

	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hashed,
		UserType:  userType,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)
	return "Bearer " + token
}

// createTestCampaign seeds a school and an active campaign owned by owner.
func createTestCampaign(t *testing.T, db *gorm.DB, owner models.User, target float64) models.Campaign {
	t.Helper()

	school := models.School{
		OwnerID: owner.ID,
		Name:    "Springfield High",
		City:    "Springfield",
	}
	require.NoError(t, db.Create(&school).Error)

	campaign := models.Campaign{
		SchoolID:     school.ID,
		Title:        "New Library Wing",
		TargetAmount: target,
		Status:       models.CampaignStatusActive,
		Category:     models.CampaignCategoryLibrary,
		Urgency:      models.CampaignUrgencyMedium,
	}
	require.NoError(t, db.Create(&campaign).Error)
	return campaign
}
