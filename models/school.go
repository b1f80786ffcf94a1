package models

import (
	"gorm.io/gorm"
)

// School represents an educational institution that raises funds on the
// platform. Each school has a single owning user; ownership gates updates.
type School struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	Owner       User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string `gorm:"not null" json:"name"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website"`
	Description string `json:"description"`

	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:SchoolID"`
}
