package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// SchoolRequest represents the create/update school request body
type SchoolRequest struct {
	Name        string `json:"name" binding:"required"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// ListSchools returns all schools. Public endpoint.
func ListSchools(c *gin.Context) {
	var schools []models.School
	query := config.DB.Order("name ASC")

	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", city)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+utils.SanitizeString(search)+"%")
	}

	if err := query.Find(&schools).Error; err != nil {
		utils.LogError("Failed to fetch schools: %v", err)
		utils.InternalServerError(c, "Failed to fetch schools", err.Error())
		return
	}

	utils.LogInfo("Listed %d schools", len(schools))
	utils.Success(c, "Schools retrieved successfully", gin.H{
		"schools": schools,
		"total":   len(schools),
	})
}

// GetSchool returns one school with its campaigns. Public endpoint.
func GetSchool(c *gin.Context) {
	schoolID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid school ID", "School ID must be a number")
		return
	}

	var school models.School
	if err := config.DB.Preload("Campaigns").First(&school, uint(schoolID)).Error; err != nil {
		utils.LogError("School not found: %d", schoolID)
		utils.NotFound(c, "School not found")
		return
	}

	utils.Success(c, "School retrieved successfully", gin.H{"school": school})
}

// CreateSchool registers a new school owned by the authenticated
// institution user.
func CreateSchool(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("School creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if err := utils.ValidateStringLength(req.Name, 2, 200); err != nil {
		utils.LogError("School creation failed - Invalid name: %s", req.Name)
		utils.BadRequest(c, "Invalid school name", err.Error())
		return
	}

	school := models.School{
		OwnerID:     user.ID,
		Name:        req.Name,
		Line1:       req.Line1,
		Line2:       req.Line2,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&school).Error; err != nil {
		utils.LogError("Failed to create school for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create school", err.Error())
		return
	}

	utils.LogInfo("School %d created by user %d", school.ID, user.ID)
	utils.Created(c, "School created successfully", gin.H{"school": school})
}

// UpdateSchool modifies a school. Only the owner may update it.
func UpdateSchool(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	schoolID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid school ID", "School ID must be a number")
		return
	}

	var school models.School
	if err := config.DB.First(&school, uint(schoolID)).Error; err != nil {
		utils.LogError("School not found: %d", schoolID)
		utils.NotFound(c, "School not found")
		return
	}

	if school.OwnerID != user.ID {
		utils.LogError("User %d attempted to update school %d owned by %d", user.ID, school.ID, school.OwnerID)
		utils.Forbidden(c, "You do not own this school")
		return
	}

	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("School update failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if err := utils.ValidateStringLength(req.Name, 2, 200); err != nil {
		utils.BadRequest(c, "Invalid school name", err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"line1":       req.Line1,
		"line2":       req.Line2,
		"city":        req.City,
		"state":       req.State,
		"country":     req.Country,
		"postal_code": req.PostalCode,
		"logo_url":    req.LogoURL,
		"website":     req.Website,
		"description": utils.SanitizeString(req.Description),
	}
	if err := config.DB.Model(&school).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update school %d: %v", school.ID, err)
		utils.InternalServerError(c, "Failed to update school", err.Error())
		return
	}

	utils.LogInfo("School %d updated by user %d", school.ID, user.ID)
	utils.Success(c, "School updated successfully", gin.H{"school": school})
}

// DeleteSchool soft-deletes a school. Only the owner may delete it.
func DeleteSchool(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	schoolID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid school ID", "School ID must be a number")
		return
	}

	var school models.School
	if err := config.DB.First(&school, uint(schoolID)).Error; err != nil {
		utils.LogError("School not found: %d", schoolID)
		utils.NotFound(c, "School not found")
		return
	}

	if school.OwnerID != user.ID {
		utils.LogError("User %d attempted to delete school %d owned by %d", user.ID, school.ID, school.OwnerID)
		utils.Forbidden(c, "You do not own this school")
		return
	}

	if err := config.DB.Delete(&school).Error; err != nil {
		utils.LogError("Failed to delete school %d: %v", school.ID, err)
		utils.InternalServerError(c, "Failed to delete school", err.Error())
		return
	}

	utils.LogInfo("School %d deleted by user %d", school.ID, user.ID)
	utils.Success(c, "School deleted successfully", nil)
}
