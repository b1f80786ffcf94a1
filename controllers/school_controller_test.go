package controllers

import (
	"bytes"
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

func schoolTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/schools/:id", GetSchool)
	managed := router.Group("")
	managed.Use(middleware.AuthMiddleware(), middleware.InstitutionMiddleware())
	{
		managed.POST("/schools", CreateSchool)
		managed.PUT("/schools/:id", UpdateSchool)
		managed.DELETE("/schools/:id", DeleteSchool)
	}
	return router
}

func putJSON(t *testing.T, router *gin.Engine, path string, body interface{}, header string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", header)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSchoolRequiresInstitutionAccount(t *testing.T) {
	db := setupTestDB(t)
	router := schoolTestRouter()
	alum := createTestUser(t, db, "justalum", models.UserTypeAlumni)

	w := postJSON(t, router, "/schools", gin.H{"name": "Shelbyville Elementary"},
		map[string]string{"Authorization": authHeader(t, alum)})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateSchoolOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	router := schoolTestRouter()

	owner := createTestUser(t, db, "owner20", models.UserTypeInstitution)
	other := createTestUser(t, db, "other20", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 1000)

	var school models.School
	require.NoError(t, db.First(&school, campaign.SchoolID).Error)

	// A different institution user gets 403
	w := putJSON(t, router, "/schools/1", gin.H{"name": "Hostile Takeover High"}, authHeader(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var unchanged models.School
	require.NoError(t, db.First(&unchanged, school.ID).Error)
	assert.Equal(t, school.Name, unchanged.Name)

	// The owner can update
	w = putJSON(t, router, "/schools/1", gin.H{"name": "Springfield Senior High"}, authHeader(t, owner))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.School
	require.NoError(t, db.First(&updated, school.ID).Error)
	assert.Equal(t, "Springfield Senior High", updated.Name)
}

func TestDeleteSchoolOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	router := schoolTestRouter()

	owner := createTestUser(t, db, "owner21", models.UserTypeInstitution)
	other := createTestUser(t, db, "other21", models.UserTypeInstitution)
	campaign := createTestCampaign(t, db, owner, 1000)

	req := httptest.NewRequest(http.MethodDelete, "/schools/1", nil)
	req.Header.Set("Authorization", authHeader(t, other))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var school models.School
	assert.NoError(t, db.First(&school, campaign.SchoolID).Error)
}
