package models

import (
	"time"

	"github.com/craftconnect/artisan-market-api/utils"
	"gorm.io/gorm"
)

// PostType distinguishes what an artisan feed post is about.
type PostType string

const (
	PostService      PostType = "SERVICE"
	PostPromotion    PostType = "PROMOTION"
	PostShowcase     PostType = "SHOWCASE"
	PostTip          PostType = "TIP"
	PostAnnouncement PostType = "ANNOUNCEMENT"
)

// ArtisanFeed is a post by an artisan advertising services, promotions,
// work showcases, tips or announcements.
type ArtisanFeed struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	ArtisanID   string         `gorm:"type:uuid;not null;index" json:"artisan_id"`
	Artisan     ArtisanProfile `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"size:255;index" json:"slug"`
	Description string         `gorm:"type:text;not null" json:"description"`

	// Post details
	PostType        PostType `gorm:"size:20;default:'SERVICE';index:idx_artisan_feeds_type_created" json:"post_type"`
	ServiceCategory string   `gorm:"size:100;index:idx_artisan_feeds_category_active" json:"service_category"`

	// Media
	FeaturedImage string  `gorm:"not null" json:"featured_image"` // storage key
	VideoURL      *string `json:"video_url"`

	// Pricing (if applicable)
	Price              *float64 `json:"price"`
	DiscountPercentage *int     `gorm:"check:discount_percentage IS NULL OR (discount_percentage >= 0 AND discount_percentage <= 100)" json:"discount_percentage"`

	// Validity window (for promotions)
	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`

	// Engagement metrics
	ViewsCount    int `gorm:"default:0" json:"views_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	DislikesCount int `gorm:"default:0" json:"dislikes_count"`
	ReportsCount  int `gorm:"default:0" json:"reports_count"`
	SharesCount   int `gorm:"default:0" json:"shares_count"`

	// Visibility and moderation
	IsActive   bool `gorm:"default:true;index:idx_artisan_feeds_category_active" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`
	IsPromoted bool `gorm:"default:false" json:"is_promoted"`
	IsFlagged  bool `gorm:"default:false" json:"is_flagged"`

	CreatedAt time.Time      `gorm:"index:idx_artisan_feeds_type_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ArtisanFeed model
func (ArtisanFeed) TableName() string {
	return "artisan_feeds"
}

// BeforeCreate assigns a random UUID primary key and generates a slug with a
// random suffix when none was supplied
func (f *ArtisanFeed) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.Slug == "" {
		f.Slug = utils.SlugifyWithSuffix(f.Title)
	}
	return nil
}

// BeforeSave validates the optional discount range
func (f *ArtisanFeed) BeforeSave(tx *gorm.DB) error {
	if f.DiscountPercentage != nil && (*f.DiscountPercentage < 0 || *f.DiscountPercentage > 100) {
		return &ValidationError{
			Code:    "INVALID_DISCOUNT",
			Message: "Discount percentage must be between 0 and 100",
		}
	}
	return nil
}
