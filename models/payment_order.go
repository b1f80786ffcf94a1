package models

import (
	"gorm.io/gorm"
)

// PaymentOrder statuses
const (
	PaymentOrderStatusPending = "pending"
	PaymentOrderStatusSuccess = "success"
)

// PaymentOrder bridges a client-initiated donation intent to the payment
// provider's checkout session and, once paid, to the Donation row. OrderID
// is generated at create time and never changes; it is the join key between
// the gateway session and internal records.
type PaymentOrder struct {
	gorm.Model
	OrderID          string  `gorm:"uniqueIndex;not null" json:"order_id"`
	CampaignID       uint    `gorm:"not null;index" json:"campaign_id"`
	UserID           uint    `gorm:"index" json:"user_id"`
	Amount           float64 `gorm:"not null" json:"amount"`
	PaymentStatus    string  `gorm:"default:'pending';index" json:"payment_status"` // pending, success
	PaymentSessionID string  `json:"payment_session_id"`
	DonationID       *uint   `json:"donation_id"`
}
