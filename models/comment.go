package models

import (
	"time"

	"gorm.io/gorm"
)

// CommentType is the discriminator identifying which feed a comment belongs to.
type CommentType string

const (
	CommentOnUserFeed    CommentType = "USER_FEED"
	CommentOnArtisanFeed CommentType = "ARTISAN_FEED"
)

// Comment is a comment on either a user feed (job request) or an artisan
// feed post. Exactly one of UserFeedID/ArtisanFeedID is set, and it must
// match the CommentType discriminator; the database has no sum type, so the
// BeforeSave hook enforces this at the write boundary. Replies reference
// their parent comment.
type Comment struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Polymorphic target
	CommentType   CommentType  `gorm:"size:20;not null;index:idx_comments_type_created" json:"comment_type"`
	UserFeedID    *string      `gorm:"type:uuid;index" json:"user_feed_id"`
	UserFeed      *UserFeed    `gorm:"foreignKey:UserFeedID" json:"-"`
	ArtisanFeedID *string      `gorm:"type:uuid;index" json:"artisan_feed_id"`
	ArtisanFeed   *ArtisanFeed `gorm:"foreignKey:ArtisanFeedID" json:"-"`

	Content         string   `gorm:"size:1000;not null" json:"content"`
	ParentCommentID *string  `gorm:"type:uuid;index" json:"parent_comment_id"`
	ParentComment   *Comment `gorm:"foreignKey:ParentCommentID" json:"-"`
	Replies         []Comment `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`

	// Engagement
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	DislikesCount int `gorm:"default:0" json:"dislikes_count"`

	// Moderation
	IsEdited  bool `gorm:"default:false" json:"is_edited"`
	IsFlagged bool `gorm:"default:false" json:"is_flagged"`
	IsDeleted bool `gorm:"default:false" json:"is_deleted"`

	CreatedAt time.Time      `gorm:"index:idx_comments_type_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns a random UUID primary key
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// BeforeSave rejects writes where the target foreign keys do not line up
// with the comment type discriminator
func (c *Comment) BeforeSave(tx *gorm.DB) error {
	switch c.CommentType {
	case CommentOnUserFeed:
		if c.UserFeedID == nil || c.ArtisanFeedID != nil {
			return errInvalidTarget("USER_FEED comments must reference exactly one user feed")
		}
	case CommentOnArtisanFeed:
		if c.ArtisanFeedID == nil || c.UserFeedID != nil {
			return errInvalidTarget("ARTISAN_FEED comments must reference exactly one artisan feed")
		}
	default:
		return errInvalidTarget("Comment type must be USER_FEED or ARTISAN_FEED")
	}
	return nil
}

func errInvalidTarget(msg string) error {
	return &ValidationError{Code: "INVALID_TARGET", Message: msg}
}
