package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ReportReason categorizes why content was flagged.
type ReportReason string

const (
	ReasonSpam          ReportReason = "SPAM"
	ReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReasonScam          ReportReason = "SCAM"
	ReasonMisleading    ReportReason = "MISLEADING"
	ReasonHarassment    ReportReason = "HARASSMENT"
	ReasonCopyright     ReportReason = "COPYRIGHT"
	ReasonOther         ReportReason = "OTHER"
)

// IsValid reports whether the reason is one of the supported values
func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonScam, ReasonMisleading,
		ReasonHarassment, ReasonCopyright, ReasonOther:
		return true
	}
	return false
}

// ReportTarget is the discriminator identifying what was reported.
type ReportTarget string

const (
	ReportOnUserFeed    ReportTarget = "USER_FEED"
	ReportOnArtisanFeed ReportTarget = "ARTISAN_FEED"
	ReportOnComment     ReportTarget = "COMMENT"
	ReportOnUser        ReportTarget = "USER"
)

// ReportStatus is the moderation workflow state of a report.
// Transitions: PENDING -> UNDER_REVIEW -> {RESOLVED, DISMISSED}.
type ReportStatus string

const (
	ReportPending     ReportStatus = "PENDING"
	ReportUnderReview ReportStatus = "UNDER_REVIEW"
	ReportResolved    ReportStatus = "RESOLVED"
	ReportDismissed   ReportStatus = "DISMISSED"
)

// CanTransitionTo reports whether the workflow allows moving to next
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch s {
	case ReportPending:
		return next == ReportUnderReview
	case ReportUnderReview:
		return next == ReportResolved || next == ReportDismissed
	}
	return false
}

// Report flags a feed post, comment or user for moderation. Exactly one
// target foreign key is set and it must match the ContentType discriminator.
// Deleting the reviewer clears ReviewedByID instead of cascading, so the
// moderation record survives.
type Report struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ReporterID string `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reporter   User   `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`

	// Polymorphic target
	ContentType    ReportTarget `gorm:"size:20;not null" json:"content_type"`
	UserFeedID     *string      `gorm:"type:uuid;index" json:"user_feed_id"`
	UserFeed       *UserFeed    `gorm:"foreignKey:UserFeedID" json:"-"`
	ArtisanFeedID  *string      `gorm:"type:uuid;index" json:"artisan_feed_id"`
	ArtisanFeed    *ArtisanFeed `gorm:"foreignKey:ArtisanFeedID" json:"-"`
	CommentID      *string      `gorm:"type:uuid;index" json:"comment_id"`
	Comment        *Comment     `gorm:"foreignKey:CommentID" json:"-"`
	ReportedUserID *string      `gorm:"type:uuid;index" json:"reported_user_id"`
	ReportedUser   *User        `gorm:"foreignKey:ReportedUserID" json:"-"`

	// Report details
	Reason      ReportReason `gorm:"size:20;not null" json:"reason"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      ReportStatus `gorm:"size:20;default:'PENDING';index:idx_reports_status_created" json:"status"`

	// Resolution
	ReviewedByID    *string    `gorm:"type:uuid;index" json:"reviewed_by_id"`
	ReviewedBy      *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ResolutionNotes string     `json:"resolution_notes"`
	ReviewedAt      *time.Time `json:"reviewed_at"`

	CreatedAt time.Time      `gorm:"index:idx_reports_status_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// BeforeCreate assigns a random UUID primary key
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

// BeforeSave rejects writes where the target foreign keys do not line up
// with the content type discriminator
func (r *Report) BeforeSave(tx *gorm.DB) error {
	if !r.Reason.IsValid() {
		return &ValidationError{Code: "INVALID_REASON", Message: "Report reason is not a supported value"}
	}

	set := 0
	for _, fk := range []*string{r.UserFeedID, r.ArtisanFeedID, r.CommentID, r.ReportedUserID} {
		if fk != nil {
			set++
		}
	}
	if set != 1 {
		return errInvalidTarget("Reports must reference exactly one target")
	}

	ok := false
	switch r.ContentType {
	case ReportOnUserFeed:
		ok = r.UserFeedID != nil
	case ReportOnArtisanFeed:
		ok = r.ArtisanFeedID != nil
	case ReportOnComment:
		ok = r.CommentID != nil
	case ReportOnUser:
		ok = r.ReportedUserID != nil
	default:
		return errInvalidTarget("Content type must be USER_FEED, ARTISAN_FEED, COMMENT or USER")
	}
	if !ok {
		return errInvalidTarget(fmt.Sprintf("Report target does not match content type %s", r.ContentType))
	}

	return nil
}
