package models

import (
	"gorm.io/gorm"
)

// Donation statuses. "succeeded" and "completed" are the credited terminal
// states; a transition into or out of that set moves the campaign total.
const (
	DonationStatusPending   = "pending"
	DonationStatusSucceeded = "succeeded"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"
)

// Donation represents a single donation to a campaign. DonorUserID is nil
// for anonymous/guest donations; DonorName and DonorEmail are captured at
// credit time so records survive account changes. ProviderPaymentID is the
// gateway's payment/transaction id and acts as the idempotency key for the
// direct donation webhook.
type Donation struct {
	gorm.Model
	CampaignID        uint     `gorm:"not null;index" json:"campaign_id"`
	Campaign          Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	DonorUserID       *uint    `gorm:"index" json:"donor_user_id"`
	DonorName         string   `json:"donor_name"`
	DonorEmail        string   `json:"donor_email"`
	Amount            float64  `gorm:"not null" json:"amount"`
	Status            string   `gorm:"default:'pending';index" json:"status"` // pending, succeeded, completed, failed
	ProviderPaymentID string   `gorm:"uniqueIndex" json:"provider_payment_id"`
	Message           string   `json:"message"`
}

// Credited reports whether a donation status counts toward the campaign's
// running total.
func Credited(status string) bool {
	return status == DonationStatusSucceeded || status == DonationStatusCompleted
}
