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
	"github.com/alumnifund/AlumniFund/utils"
)

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/register", RegisterUser)
	router.POST("/login", LoginUser)
	router.POST("/logout", middleware.AuthMiddleware(), LogoutUser)
	router.GET("/me", middleware.AuthMiddleware(), GetProfile)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	db := setupTestDB(t)
	router := authTestRouter()

	w := postJSON(t, router, "/register", gin.H{
		"username":         "alice_92",
		"email":            "alice@example.com",
		"password":         "Sup3rSecret",
		"confirm_password": "Sup3rSecret",
		"user_type":        "alumni",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)

	assert.NotEqual(t, "Sup3rSecret", user.Password)
	assert.NotContains(t, user.Password, "Sup3rSecret")
	assert.True(t, utils.CheckPassword("Sup3rSecret", user.Password))
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	setupTestDB(t)
	router := authTestRouter()

	w := postJSON(t, router, "/register", gin.H{
		"username":         "bob_77",
		"email":            "bob@example.com",
		"password":         "short",
		"confirm_password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := authTestRouter()
	createTestUser(t, db, "existing", models.UserTypeAlumni)

	w := postJSON(t, router, "/register", gin.H{
		"username":         "newcomer",
		"email":            "existing@example.com",
		"password":         "Sup3rSecret",
		"confirm_password": "Sup3rSecret",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginReturnsToken(t *testing.T) {
	db := setupTestDB(t)
	router := authTestRouter()
	createTestUser(t, db, "carol", models.UserTypeAlumni)

	w := postJSON(t, router, "/login", gin.H{
		"email":    "carol@example.com",
		"password": "Password1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := authTestRouter()
	createTestUser(t, db, "dave", models.UserTypeAlumni)

	w := postJSON(t, router, "/login", gin.H{
		"email":    "dave@example.com",
		"password": "WrongPass1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := setupTestDB(t)
	router := authTestRouter()
	user := createTestUser(t, db, "erin", models.UserTypeAlumni)
	header := authHeader(t, user)

	// Token works before logout
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, "/logout", nil, map[string]string{"Authorization": header})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.BlacklistedToken{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Token is refused after logout
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
