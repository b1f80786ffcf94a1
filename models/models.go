package models

import (
	"time"

	"gorm.io/gorm"
)

// User types
const (
	UserTypeAlumni      = "alumni"
	UserTypeInstitution = "institution"
)

// User represents a registered account, either an alumni donor or an
// institution staff member who manages schools and campaigns.
type User struct {
	gorm.Model
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `json:"-"`
	UserType       string    `gorm:"not null;default:'alumni'" json:"user_type"` // alumni, institution
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone"`
	GraduationYear int       `json:"graduation_year"`
	ProfileImage   string    `json:"profile_image"`
	IsBlocked      bool      `json:"is_blocked"`
	LastLoginAt    time.Time `json:"last_login_at"`
	GoogleID       string    `gorm:"default:null" json:"google_id"`

	Schools []School `json:"schools,omitempty" gorm:"foreignKey:OwnerID"`
}

// DisplayName returns the name shown on donation records and receipts.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}
