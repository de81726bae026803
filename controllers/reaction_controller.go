package controllers

import (
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateReactionRequest represents the request body for a like or dislike
type CreateReactionRequest struct {
	ReactionType  models.ReactionType   `json:"reaction_type" binding:"required,oneof=LIKE DISLIKE"`
	ContentType   models.ReactionTarget `json:"content_type" binding:"required,oneof=USER_FEED ARTISAN_FEED COMMENT"`
	UserFeedID    *string               `json:"user_feed_id"`
	ArtisanFeedID *string               `json:"artisan_feed_id"`
	CommentID     *string               `json:"comment_id"`
}

// CreateReaction handles POST /api/v1/reactions - inserts the reaction and
// bumps the target's like or dislike counter in one transaction
func CreateReaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	if !reactionTargetExists(db, req) {
		respondError(c, http.StatusNotFound, "TARGET_NOT_FOUND", "Reaction target not found")
		return
	}

	reaction := models.Reaction{
		UserID:        user.ID,
		ReactionType:  req.ReactionType,
		ContentType:   req.ContentType,
		UserFeedID:    req.UserFeedID,
		ArtisanFeedID: req.ArtisanFeedID,
		CommentID:     req.CommentID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reaction).Error; err != nil {
			return err
		}
		return models.AdjustReactionCounters(tx, &reaction, 1)
	})
	if err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reaction,
	})
}

// DeleteReaction handles DELETE /api/v1/reactions/:id - author only, removes
// the reaction and rolls back the target counter in one transaction
func DeleteReaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var reaction models.Reaction
	if err := db.First(&reaction, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "REACTION_NOT_FOUND", "Reaction not found")
		return
	}

	if reaction.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot remove another user's reaction")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&reaction).Error; err != nil {
			return err
		}
		return models.AdjustReactionCounters(tx, &reaction, -1)
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove reaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Reaction removed",
	})
}

func reactionTargetExists(db *gorm.DB, req CreateReactionRequest) bool {
	var count int64
	switch req.ContentType {
	case models.ReactOnUserFeed:
		if req.UserFeedID == nil {
			return false
		}
		db.Model(&models.UserFeed{}).Where("id = ?", *req.UserFeedID).Count(&count)
	case models.ReactOnArtisanFeed:
		if req.ArtisanFeedID == nil {
			return false
		}
		db.Model(&models.ArtisanFeed{}).Where("id = ?", *req.ArtisanFeedID).Count(&count)
	case models.ReactOnComment:
		if req.CommentID == nil {
			return false
		}
		db.Model(&models.Comment{}).Where("id = ?", *req.CommentID).Count(&count)
	}
	return count > 0
}
