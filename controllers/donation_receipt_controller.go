package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/utils"
)

// DownloadDonationReceipt generates and returns a PDF receipt for a
// credited donation. Only the donor may download it.
func DownloadDonationReceipt(c *gin.Context) {
	utils.LogInfo("Starting receipt download process")

	user, ok := currentUser(c)
	if !ok {
		return
	}

	donationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid donation ID format in receipt request: %v", err)
		utils.BadRequest(c, "Invalid donation ID", "Donation ID must be a number")
		return
	}

	var donation models.Donation
	if err := config.DB.Preload("Campaign.School").
		Where("id = ? AND donor_user_id = ?", donationID, user.ID).
		First(&donation).Error; err != nil {
		utils.LogError("Donation not found for receipt - Donation ID: %d, User ID: %d", donationID, user.ID)
		utils.NotFound(c, "Donation not found")
		return
	}

	if !models.Credited(donation.Status) {
		utils.LogError("Receipt requested for uncredited donation %d (status %s)", donation.ID, donation.Status)
		utils.BadRequest(c, "Receipt unavailable", "Receipts are only available for completed donations.")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Platform info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "AlumniFund")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Connecting alumni with the schools that shaped them")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@alumnifund.org")
	pdf.Ln(12)

	// Receipt title and donation info
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "DONATION RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(50, 8, "Receipt No: "+strconv.Itoa(int(donation.ID)))
	pdf.Cell(60, 8, "Date: "+donation.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(50, 8, "Payment Ref: "+donation.ProviderPaymentID)
	pdf.Cell(60, 8, "Status: "+donation.Status)
	pdf.Ln(10)

	// Donor info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Received From:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, donation.DonorName)
	pdf.Ln(6)
	pdf.Cell(100, 8, donation.DonorEmail)
	pdf.Ln(10)

	// Campaign info
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "In Support Of:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, donation.Campaign.Title)
	pdf.Ln(6)
	pdf.Cell(100, 8, donation.Campaign.School.Name)
	pdf.Ln(10)

	// Amount table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(120, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(120, 8, "Donation to "+donation.Campaign.Title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", donation.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(120, 10, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", donation.Amount), "", 1, "R", false, 0, "")

	// Thank you note
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 12)
	pdf.Cell(0, 10, "Thank you for giving back to your school!")

	var buf bytes.Buffer
	_ = pdf.Output(&buf)
	utils.LogInfo("PDF receipt generated successfully for donation ID: %d", donation.ID)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=donation_receipt.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Receipt download completed for donation ID: %d", donation.ID)
}
