package models

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

// phoneRegex validates phone numbers in the format '+999999999', 9-15 digits.
var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// User represents an account in the system. Every piece of owned content
// (roles, profile, feeds, comments, reactions, reports) hangs off a User.
type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Auth0ID     string `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	FullName    string `gorm:"not null" json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Bio         string `gorm:"size:500" json:"bio"`

	// Media (storage key, not bytes)
	ProfilePicture string `json:"profile_picture"`

	// Address fields
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsVerified bool `gorm:"default:false" json:"is_verified"`

	// Owned content
	Roles          []Role          `gorm:"foreignKey:UserID" json:"roles,omitempty"`
	ArtisanProfile *ArtisanProfile `gorm:"foreignKey:UserID" json:"artisan_profile,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a random UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// BeforeSave validates the phone number format when one is provided
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.PhoneNumber != "" && !phoneRegex.MatchString(u.PhoneNumber) {
		return &ValidationError{
			Code:    "INVALID_PHONE_NUMBER",
			Message: "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed.",
		}
	}
	return nil
}
