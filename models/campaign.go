package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign statuses
const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Campaign categories. Stored as a validated enum rather than free-form
// client metadata so reporting can group on it.
const (
	CampaignCategoryGeneral        = "general"
	CampaignCategoryScholarship    = "scholarship"
	CampaignCategoryInfrastructure = "infrastructure"
	CampaignCategoryLibrary        = "library"
	CampaignCategorySports         = "sports"
	CampaignCategoryResearch       = "research"
)

// Campaign urgency levels
const (
	CampaignUrgencyLow    = "low"
	CampaignUrgencyMedium = "medium"
	CampaignUrgencyHigh   = "high"
)

// Campaign represents a fundraising need belonging to a school.
// CurrentAmount is a running total maintained incrementally by the payment
// reconciliation flow and must equal the sum of the campaign's completed
// donation amounts.
type Campaign struct {
	gorm.Model
	SchoolID      uint      `gorm:"not null;index" json:"school_id"`
	School        School    `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	TargetAmount  float64   `gorm:"not null" json:"target_amount"`
	CurrentAmount float64   `gorm:"default:0" json:"current_amount"`
	Status        string    `gorm:"default:'active';index" json:"status"`  // active, completed, cancelled
	Category      string    `gorm:"default:'general'" json:"category"`     // general, scholarship, infrastructure, library, sports, research
	Urgency       string    `gorm:"default:'medium'" json:"urgency"`       // low, medium, high
	Deadline      time.Time `json:"deadline"`

	Donations []Donation `json:"donations,omitempty" gorm:"foreignKey:CampaignID"`
}

// ValidCampaignCategory reports whether category is one of the accepted
// enum values.
func ValidCampaignCategory(category string) bool {
	switch category {
	case CampaignCategoryGeneral, CampaignCategoryScholarship,
		CampaignCategoryInfrastructure, CampaignCategoryLibrary,
		CampaignCategorySports, CampaignCategoryResearch:
		return true
	}
	return false
}

// ValidCampaignUrgency reports whether urgency is one of the accepted
// enum values.
func ValidCampaignUrgency(urgency string) bool {
	switch urgency {
	case CampaignUrgencyLow, CampaignUrgencyMedium, CampaignUrgencyHigh:
		return true
	}
	return false
}
