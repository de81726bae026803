package models

import (
	"time"

	"gorm.io/gorm"
)

// ProposalStatus is the workflow state of a proposal.
// Transitions: PENDING -> {ACCEPTED, REJECTED, WITHDRAWN}.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "PENDING"
	ProposalAccepted  ProposalStatus = "ACCEPTED"
	ProposalRejected  ProposalStatus = "REJECTED"
	ProposalWithdrawn ProposalStatus = "WITHDRAWN"
)

// CanTransitionTo reports whether the workflow allows moving to next
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	if s != ProposalPending {
		return false
	}
	return next == ProposalAccepted || next == ProposalRejected || next == ProposalWithdrawn
}

// ArtisanProposal is an artisan's quote against a user's job request. An
// artisan may submit at most one proposal per job request, enforced by the
// unique (user_feed_id, artisan_id) index.
type ArtisanProposal struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserFeedID string         `gorm:"type:uuid;not null;uniqueIndex:idx_proposal_feed_artisan" json:"user_feed_id"`
	UserFeed   UserFeed       `gorm:"foreignKey:UserFeedID" json:"-"`
	ArtisanID  string         `gorm:"type:uuid;not null;uniqueIndex:idx_proposal_feed_artisan" json:"artisan_id"`
	Artisan    ArtisanProfile `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`

	// Proposal details
	ProposedPrice         float64 `gorm:"not null" json:"proposed_price"`
	EstimatedDurationDays int     `gorm:"not null" json:"estimated_duration_days"`
	Message               string  `gorm:"type:text;not null" json:"message"`

	// Terms and conditions
	TermsConditions string `json:"terms_conditions"`
	PaymentTerms    string `json:"payment_terms"`

	// Attachments (storage key)
	QuoteDocument string `json:"quote_document"`

	Status     ProposalStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	AcceptedAt *time.Time     `json:"accepted_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ArtisanProposal model
func (ArtisanProposal) TableName() string {
	return "artisan_proposals"
}

// BeforeCreate assigns a random UUID primary key and rejects a second
// proposal by the same artisan on the same job request. The unique index
// backs this up at the storage layer; the in-transaction check exists so the
// duplicate surfaces as a typed error rather than raw driver text.
func (p *ArtisanProposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}

	var count int64
	err := tx.Model(&ArtisanProposal{}).
		Where("user_feed_id = ? AND artisan_id = ?", p.UserFeedID, p.ArtisanID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{
			Code:    "DUPLICATE_PROPOSAL",
			Message: "Artisan has already submitted a proposal for this job request",
		}
	}

	return nil
}

// BeforeSave validates required numeric fields
func (p *ArtisanProposal) BeforeSave(tx *gorm.DB) error {
	if p.ProposedPrice <= 0 {
		return &ValidationError{Code: "INVALID_PRICE", Message: "Proposed price must be greater than zero"}
	}
	if p.EstimatedDurationDays <= 0 {
		return &ValidationError{Code: "INVALID_DURATION", Message: "Estimated duration must be at least one day"}
	}
	return nil
}
