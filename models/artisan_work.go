package models

import (
	"time"

	"github.com/craftconnect/artisan-market-api/utils"
	"gorm.io/gorm"
)

// ProjectStatus tracks the lifecycle of a portfolio project.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectPlanned    ProjectStatus = "PLANNED"
)

// ArtisanWork is a portfolio entry showcasing a completed (or planned)
// project by an artisan.
type ArtisanWork struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	ArtisanID   string         `gorm:"type:uuid;not null;index" json:"artisan_id"`
	Artisan     ArtisanProfile `gorm:"foreignKey:ArtisanID" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"size:255;index" json:"slug"`
	Description string         `gorm:"type:text;not null" json:"description"`

	// Project details
	ProjectType   string        `gorm:"size:100" json:"project_type"`
	ProjectStatus ProjectStatus `gorm:"size:20;default:'COMPLETED'" json:"project_status"`
	DurationDays  int           `json:"duration_days"` // project duration in days
	ProjectCost   *float64      `json:"project_cost"`
	Location      string        `json:"location"`

	// Media (storage key)
	FeaturedImage string `gorm:"not null" json:"featured_image"`

	// Client information (optional)
	ClientName        string `json:"client_name"`
	ClientTestimonial string `json:"client_testimonial"`
	ClientRating      *int   `gorm:"check:client_rating IS NULL OR (client_rating >= 1 AND client_rating <= 5)" json:"client_rating"`

	// Engagement metrics
	ViewsCount int `gorm:"default:0" json:"views_count"`
	LikesCount int `gorm:"default:0" json:"likes_count"`

	CompletionDate *time.Time `json:"completion_date"`

	// Visibility
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	IsPublic   bool `gorm:"default:true" json:"is_public"`

	Images []ArtisanWorkImage `gorm:"foreignKey:WorkID" json:"images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ArtisanWork model
func (ArtisanWork) TableName() string {
	return "artisan_works"
}

// BeforeCreate assigns a random UUID primary key and generates a slug with a
// random suffix when none was supplied, avoiding collisions between works
// that share a title.
func (w *ArtisanWork) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = NewID()
	}
	if w.Slug == "" {
		w.Slug = utils.SlugifyWithSuffix(w.Title)
	}
	return nil
}

// BeforeSave validates the optional client rating range
func (w *ArtisanWork) BeforeSave(tx *gorm.DB) error {
	if w.ClientRating != nil && (*w.ClientRating < 1 || *w.ClientRating > 5) {
		return &ValidationError{
			Code:    "INVALID_CLIENT_RATING",
			Message: "Client rating must be between 1 and 5",
		}
	}
	return nil
}

// ArtisanWorkImage is an additional gallery image attached to a portfolio
// work, displayed in (order, uploaded_at) order.
type ArtisanWorkImage struct {
	ID      string      `gorm:"primaryKey;type:uuid" json:"id"`
	WorkID  string      `gorm:"type:uuid;not null;index" json:"work_id"`
	Work    ArtisanWork `gorm:"foreignKey:WorkID" json:"-"`
	Image   string      `gorm:"not null" json:"image"` // storage key
	Caption string      `json:"caption"`
	Order   int         `gorm:"column:display_order;default:0" json:"order"`

	UploadedAt time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ArtisanWorkImage model
func (ArtisanWorkImage) TableName() string {
	return "artisan_work_images"
}

// BeforeCreate assigns a random UUID primary key
func (i *ArtisanWorkImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = NewID()
	}
	return nil
}
