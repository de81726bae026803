package models

import (
	"time"

	"github.com/craftconnect/artisan-market-api/utils"
	"gorm.io/gorm"
)

// FeedStatus tracks the lifecycle of a job request.
type FeedStatus string

const (
	FeedOpen        FeedStatus = "OPEN"
	FeedInReview    FeedStatus = "IN_REVIEW"
	FeedNegotiating FeedStatus = "NEGOTIATING"
	FeedClosed      FeedStatus = "CLOSED"
	FeedCompleted   FeedStatus = "COMPLETED"
	FeedCancelled   FeedStatus = "CANCELLED"
)

// FeedPriority indicates how urgently the poster needs the work done.
type FeedPriority string

const (
	PriorityLow    FeedPriority = "LOW"
	PriorityMedium FeedPriority = "MEDIUM"
	PriorityHigh   FeedPriority = "HIGH"
	PriorityUrgent FeedPriority = "URGENT"
)

// UserFeed is a job request posted by a user. Users upload an invoice and a
// description so artisans can quote against real numbers.
type UserFeed struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"size:255;index" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Job details
	JobCategory    string   `gorm:"size:100;index:idx_user_feeds_category_status" json:"job_category"`
	BudgetRangeMin *float64 `json:"budget_range_min"`
	BudgetRangeMax *float64 `json:"budget_range_max"`

	// Invoice and documentation (storage keys)
	InvoiceImage        string     `gorm:"not null" json:"invoice_image"`
	InvoiceAmount       float64    `gorm:"not null" json:"invoice_amount"`
	InvoiceDate         *time.Time `json:"invoice_date"`
	AdditionalDocuments string     `json:"additional_documents"`

	Location string `json:"location"`

	// Timeline
	PreferredStartDate *time.Time `json:"preferred_start_date"`
	Deadline           *time.Time `json:"deadline"`

	// Status and priority
	Status   FeedStatus   `gorm:"size:20;default:'OPEN';index:idx_user_feeds_status_created;index:idx_user_feeds_category_status" json:"status"`
	Priority FeedPriority `gorm:"size:10;default:'MEDIUM'" json:"priority"`

	// Engagement metrics
	ViewsCount    int `gorm:"default:0" json:"views_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	DislikesCount int `gorm:"default:0" json:"dislikes_count"`
	ReportsCount  int `gorm:"default:0" json:"reports_count"`

	// Visibility and moderation
	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	IsFlagged  bool `gorm:"default:false" json:"is_flagged"`

	CreatedAt time.Time      `gorm:"index:idx_user_feeds_status_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the UserFeed model
func (UserFeed) TableName() string {
	return "user_feeds"
}

// BeforeCreate assigns a random UUID primary key and generates a slug with a
// random suffix when none was supplied
func (f *UserFeed) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.Slug == "" {
		f.Slug = utils.SlugifyWithSuffix(f.Title)
	}
	return nil
}
