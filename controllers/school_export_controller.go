package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// ExportSchoolDonations streams an Excel report of all donations received
// across a school's campaigns. Only the school owner may export it.
func ExportSchoolDonations(c *gin.Context) {
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
		utils.LogError("User %d attempted to export donations for school %d owned by %d", user.ID, school.ID, school.OwnerID)
		utils.Forbidden(c, "You do not own this school")
		return
	}

	var donations []models.Donation
	if err := config.DB.Preload("Campaign").
		Joins("JOIN campaigns ON campaigns.id = donations.campaign_id").
		Where("campaigns.school_id = ?", school.ID).
		Order("donations.created_at DESC").
		Find(&donations).Error; err != nil {
		utils.LogError("Failed to fetch donations for school %d: %v", school.ID, err)
		utils.InternalServerError(c, "Failed to fetch donations", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Donations")
	if err != nil {
		utils.LogError("Failed to create export sheet: %v", err)
		utils.InternalServerError(c, "Failed to generate report", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(school.Name + " - Donation Report")
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, header := range []string{"Donation ID", "Campaign", "Donor", "Amount", "Status", "Date"} {
		cell := headerRow.AddCell()
		cell.SetString(header)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var totalAmount float64
	for _, donation := range donations {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(donation.ID))
		row.AddCell().SetString(donation.Campaign.Title)
		row.AddCell().SetString(donation.DonorName)
		row.AddCell().SetFloat(donation.Amount)
		row.AddCell().SetString(donation.Status)
		row.AddCell().SetString(donation.CreatedAt.Format("2006-01-02 15:04"))
		if models.Credited(donation.Status) {
			totalAmount += donation.Amount
		}
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total credited")
	summaryRow.AddCell().SetString("")
	summaryRow.AddCell().SetString("")
	summaryRow.AddCell().SetFloat(totalAmount)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=donations_school_%d.xlsx", school.ID))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write export for school %d: %v", school.ID, err)
	}

	utils.LogInfo("Donation report exported for school %d: %d rows", school.ID, len(donations))
}
