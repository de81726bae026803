package controllers

import (
	"net/http"
	"time"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProposalRequest represents the request body for quoting a job request
type CreateProposalRequest struct {
	UserFeedID            string  `json:"user_feed_id" binding:"required"`
	ProposedPrice         float64 `json:"proposed_price" binding:"required,gt=0"`
	EstimatedDurationDays int     `json:"estimated_duration_days" binding:"required,gt=0"`
	Message               string  `json:"message" binding:"required"`
	TermsConditions       string  `json:"terms_conditions"`
	PaymentTerms          string  `json:"payment_terms"`
	QuoteDocument         string  `json:"quote_document"`
}

// UpdateProposalStatusRequest represents the request body for deciding a
// proposal
type UpdateProposalStatusRequest struct {
	Status models.ProposalStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED WITHDRAWN"`
}

// CreateProposal handles POST /api/v1/proposals - artisans quote against an
// open job request, one proposal per artisan per request
func CreateProposal(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	var feed models.UserFeed
	if err := db.First(&feed, "id = ?", req.UserFeedID).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Job request not found")
		return
	}

	if feed.Status == models.FeedClosed || feed.Status == models.FeedCompleted || feed.Status == models.FeedCancelled {
		respondError(c, http.StatusBadRequest, "FEED_NOT_OPEN", "Job request is no longer accepting proposals")
		return
	}

	proposal := models.ArtisanProposal{
		UserFeedID:            feed.ID,
		ArtisanID:             profile.ID,
		ProposedPrice:         req.ProposedPrice,
		EstimatedDurationDays: req.EstimatedDurationDays,
		Message:               req.Message,
		TermsConditions:       req.TermsConditions,
		PaymentTerms:          req.PaymentTerms,
		QuoteDocument:         req.QuoteDocument,
		Status:                models.ProposalPending,
	}

	if err := db.Create(&proposal).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    proposal,
	})
}

// ListFeedProposals handles GET /api/v1/user-feeds/:slug/proposals - visible
// to the job request owner only
func ListFeedProposals(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var feed models.UserFeed
	if err := db.First(&feed, "slug = ?", c.Param("slug")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Job request not found")
		return
	}

	if feed.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Only the job request owner can view its proposals")
		return
	}

	var proposals []models.ArtisanProposal
	err := db.Preload("Artisan").Where("user_feed_id = ?", feed.ID).
		Order("created_at ASC").Find(&proposals).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list proposals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    proposals,
	})
}

// ListMyProposals handles GET /api/v1/artisans/me/proposals
func ListMyProposals(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()

	query := db.Preload("UserFeed").Where("artisan_id = ?", profile.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var proposals []models.ArtisanProposal
	if err := query.Order("created_at DESC").Find(&proposals).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list proposals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    proposals,
	})
}

// UpdateProposalStatus handles PATCH /api/v1/proposals/:id/status. The job
// request owner accepts or rejects; the proposing artisan withdraws. Accepting
// stamps AcceptedAt, moves the job request to NEGOTIATING and rejects its
// other pending proposals in the same transaction.
func UpdateProposalStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var proposal models.ArtisanProposal
	err := db.Preload("UserFeed").Preload("Artisan").First(&proposal, "id = ?", c.Param("id")).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "PROPOSAL_NOT_FOUND", "Proposal not found")
		return
	}

	var req UpdateProposalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	switch req.Status {
	case models.ProposalAccepted, models.ProposalRejected:
		if proposal.UserFeed.UserID != user.ID {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Only the job request owner can decide a proposal")
			return
		}
	case models.ProposalWithdrawn:
		if proposal.Artisan.UserID != user.ID {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Only the proposing artisan can withdraw")
			return
		}
	}

	if !proposal.Status.CanTransitionTo(req.Status) {
		respondError(c, http.StatusBadRequest, "INVALID_TRANSITION",
			"Proposal cannot move from "+string(proposal.Status)+" to "+string(req.Status))
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		proposal.Status = req.Status
		if req.Status == models.ProposalAccepted {
			now := time.Now()
			proposal.AcceptedAt = &now
		}
		if err := tx.Save(&proposal).Error; err != nil {
			return err
		}

		if req.Status != models.ProposalAccepted {
			return nil
		}

		// One winner per job request: the rest of the pending field is
		// rejected, and the request moves into negotiation. UpdateColumn
		// keeps the model hooks out of the batch updates.
		err := tx.Model(&models.ArtisanProposal{}).
			Where("user_feed_id = ? AND id <> ? AND status = ?",
				proposal.UserFeedID, proposal.ID, models.ProposalPending).
			UpdateColumn("status", models.ProposalRejected).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.UserFeed{}).Where("id = ?", proposal.UserFeedID).
			UpdateColumn("status", models.FeedNegotiating).Error
	})
	if err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    proposal,
	})
}
