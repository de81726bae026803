package models

import (
	"time"

	"gorm.io/gorm"
)

// ReactionType is a like or a dislike.
type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

// ReactionTarget is the discriminator identifying what a reaction is on.
type ReactionTarget string

const (
	ReactOnUserFeed    ReactionTarget = "USER_FEED"
	ReactOnArtisanFeed ReactionTarget = "ARTISAN_FEED"
	ReactOnComment     ReactionTarget = "COMMENT"
)

// Reaction is a like/dislike on a feed post or comment. Exactly one target
// foreign key is set and it must match the ContentType discriminator. A user
// may react at most once per target; since unique indexes over nullable
// columns treat NULLs as distinct, the duplicate check runs in the same
// transaction as the insert (see BeforeCreate).
type Reaction struct {
	ID           string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string       `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
	ReactionType ReactionType `gorm:"size:10;not null" json:"reaction_type"`

	// Polymorphic target
	ContentType   ReactionTarget `gorm:"size:20;not null" json:"content_type"`
	UserFeedID    *string        `gorm:"type:uuid;index" json:"user_feed_id"`
	UserFeed      *UserFeed      `gorm:"foreignKey:UserFeedID" json:"-"`
	ArtisanFeedID *string        `gorm:"type:uuid;index" json:"artisan_feed_id"`
	ArtisanFeed   *ArtisanFeed   `gorm:"foreignKey:ArtisanFeedID" json:"-"`
	CommentID     *string        `gorm:"type:uuid;index" json:"comment_id"`
	Comment       *Comment       `gorm:"foreignKey:CommentID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Reaction model
func (Reaction) TableName() string {
	return "reactions"
}

// BeforeCreate assigns a random UUID primary key and rejects a second
// reaction by the same user on the same target. The existence check shares
// the insert's transaction, so two concurrent reactions on one target cannot
// both land.
func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}

	q := tx.Model(&Reaction{}).Where("user_id = ? AND content_type = ?", r.UserID, r.ContentType)
	switch r.ContentType {
	case ReactOnUserFeed:
		q = q.Where("user_feed_id = ?", r.UserFeedID)
	case ReactOnArtisanFeed:
		q = q.Where("artisan_feed_id = ?", r.ArtisanFeedID)
	case ReactOnComment:
		q = q.Where("comment_id = ?", r.CommentID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{
			Code:    "DUPLICATE_REACTION",
			Message: "User has already reacted to this content",
		}
	}

	return nil
}

// BeforeSave rejects writes where the target foreign keys do not line up
// with the content type discriminator
func (r *Reaction) BeforeSave(tx *gorm.DB) error {
	if r.ReactionType != ReactionLike && r.ReactionType != ReactionDislike {
		return &ValidationError{Code: "INVALID_REACTION_TYPE", Message: "Reaction type must be LIKE or DISLIKE"}
	}

	switch r.ContentType {
	case ReactOnUserFeed:
		if r.UserFeedID == nil || r.ArtisanFeedID != nil || r.CommentID != nil {
			return errInvalidTarget("USER_FEED reactions must reference exactly one user feed")
		}
	case ReactOnArtisanFeed:
		if r.ArtisanFeedID == nil || r.UserFeedID != nil || r.CommentID != nil {
			return errInvalidTarget("ARTISAN_FEED reactions must reference exactly one artisan feed")
		}
	case ReactOnComment:
		if r.CommentID == nil || r.UserFeedID != nil || r.ArtisanFeedID != nil {
			return errInvalidTarget("COMMENT reactions must reference exactly one comment")
		}
	default:
		return errInvalidTarget("Content type must be USER_FEED, ARTISAN_FEED or COMMENT")
	}

	return nil
}
