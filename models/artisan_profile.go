package models

import (
	"time"

	"github.com/craftconnect/artisan-market-api/utils"
	"gorm.io/gorm"
)

// ExperienceLevel buckets an artisan's years of experience.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "BEGINNER"     // 0-2 years
	ExperienceIntermediate ExperienceLevel = "INTERMEDIATE" // 2-5 years
	ExperienceExperienced  ExperienceLevel = "EXPERIENCED"  // 5-10 years
	ExperienceExpert       ExperienceLevel = "EXPERT"       // 10+ years
)

// AvailabilityStatus describes whether an artisan is taking on work.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "AVAILABLE"
	AvailabilityBusy        AvailabilityStatus = "BUSY"
	AvailabilityUnavailable AvailabilityStatus = "UNAVAILABLE"
)

// ArtisanProfile holds the business and professional information for an
// artisan. It is 1:1 with a User and owns the portfolio, feed posts and
// proposals the artisan creates.
type ArtisanProfile struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User           User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BusinessName   string `gorm:"not null" json:"business_name"`
	Slug           string `gorm:"uniqueIndex;size:255" json:"slug"`
	Specialization string `gorm:"size:100" json:"specialization"`

	// Professional details
	YearsOfExperience int             `gorm:"check:years_of_experience >= 0" json:"years_of_experience"`
	ExperienceLevel   ExperienceLevel `gorm:"size:20" json:"experience_level"`
	LicenseNumber     string          `json:"license_number"`
	Certification     string          `json:"certification"` // storage key for certification document

	// Business information
	BusinessRegistration string `json:"business_registration"`
	TaxID                string `json:"tax_id"`
	InsuranceDetails     string `json:"insurance_details"`

	// Ratings and reputation
	AverageRating     float64 `gorm:"default:0;check:average_rating >= 0 AND average_rating <= 5" json:"average_rating"`
	TotalReviews      int     `gorm:"default:0" json:"total_reviews"`
	CompletedProjects int     `gorm:"default:0" json:"completed_projects"`

	// Availability
	AvailabilityStatus AvailabilityStatus `gorm:"size:20;default:'AVAILABLE'" json:"availability_status"`
	HourlyRate         *float64           `json:"hourly_rate"`
	ServiceRadiusKM    *int               `json:"service_radius_km"`

	About           string `gorm:"size:2000" json:"about"`
	ServicesOffered string `json:"services_offered"` // comma-separated list of services

	// Verification
	IsVerified            bool       `gorm:"default:false" json:"is_verified"`
	VerifiedAt            *time.Time `json:"verified_at"`
	VerificationDocuments string     `json:"verification_documents"` // storage key

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ArtisanProfile model
func (ArtisanProfile) TableName() string {
	return "artisan_profiles"
}

// BeforeCreate assigns a random UUID primary key and derives the slug from
// the business name and the owner's username when none was supplied. The
// slug is never regenerated after first assignment.
func (p *ArtisanProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Slug == "" {
		var username string
		if p.User.Username != "" {
			username = p.User.Username
		} else {
			var owner User
			if err := tx.Select("username").First(&owner, "id = ?", p.UserID).Error; err != nil {
				return err
			}
			username = owner.Username
		}
		p.Slug = utils.Slugify(p.BusinessName + "-" + username)
	}
	return nil
}

// BeforeSave keeps the rating inside its documented bounds
func (p *ArtisanProfile) BeforeSave(tx *gorm.DB) error {
	if p.AverageRating < 0 || p.AverageRating > 5 {
		return &ValidationError{
			Code:    "INVALID_RATING",
			Message: "Average rating must be between 0.00 and 5.00",
		}
	}
	if p.YearsOfExperience < 0 {
		return &ValidationError{
			Code:    "INVALID_EXPERIENCE",
			Message: "Years of experience cannot be negative",
		}
	}
	return nil
}
