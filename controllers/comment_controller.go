package controllers

import (
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateCommentRequest represents the request body for posting a comment
type CreateCommentRequest struct {
	CommentType     models.CommentType `json:"comment_type" binding:"required,oneof=USER_FEED ARTISAN_FEED"`
	UserFeedID      *string            `json:"user_feed_id"`
	ArtisanFeedID   *string            `json:"artisan_feed_id"`
	Content         string             `json:"content" binding:"required,max=1000"`
	ParentCommentID *string            `json:"parent_comment_id"`
}

// UpdateCommentRequest represents the request body for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// CreateComment handles POST /api/v1/comments - writes the comment and bumps
// the target's comments_count in one transaction
func CreateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()

	// The target feed must exist before anything is written
	switch req.CommentType {
	case models.CommentOnUserFeed:
		if req.UserFeedID == nil {
			respondError(c, http.StatusBadRequest, "INVALID_TARGET", "user_feed_id is required for USER_FEED comments")
			return
		}
		var feed models.UserFeed
		if err := db.First(&feed, "id = ?", *req.UserFeedID).Error; err != nil {
			respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Feed not found")
			return
		}
	case models.CommentOnArtisanFeed:
		if req.ArtisanFeedID == nil {
			respondError(c, http.StatusBadRequest, "INVALID_TARGET", "artisan_feed_id is required for ARTISAN_FEED comments")
			return
		}
		var feed models.ArtisanFeed
		if err := db.First(&feed, "id = ?", *req.ArtisanFeedID).Error; err != nil {
			respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Post not found")
			return
		}
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := db.First(&parent, "id = ?", *req.ParentCommentID).Error; err != nil {
			respondError(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "Parent comment not found")
			return
		}
		// Replies stay on the same target as their parent
		if parent.CommentType != req.CommentType {
			respondError(c, http.StatusBadRequest, "INVALID_TARGET", "Reply target does not match parent comment")
			return
		}
	}

	comment := models.Comment{
		UserID:          user.ID,
		CommentType:     req.CommentType,
		UserFeedID:      req.UserFeedID,
		ArtisanFeedID:   req.ArtisanFeedID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return models.AdjustCommentCounters(tx, &comment, 1)
	})
	if err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}

// ListComments handles GET /api/v1/comments?user_feed_id=|artisan_feed_id= -
// returns top-level comments for one target with replies preloaded
func ListComments(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Comment{}).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("User")
		}).
		Where("parent_comment_id IS NULL")

	userFeedID := c.Query("user_feed_id")
	artisanFeedID := c.Query("artisan_feed_id")
	switch {
	case userFeedID != "" && artisanFeedID == "":
		query = query.Where("user_feed_id = ?", userFeedID)
	case artisanFeedID != "" && userFeedID == "":
		query = query.Where("artisan_feed_id = ?", artisanFeedID)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_TARGET", "Provide exactly one of user_feed_id or artisan_feed_id")
		return
	}

	limit, offset := pagination(c)

	var comments []models.Comment
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}

// UpdateComment handles PATCH /api/v1/comments/:id - author only, marks the
// comment as edited
func UpdateComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var comment models.Comment
	if err := db.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
		return
	}

	if comment.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot edit another user's comment")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	comment.Content = req.Content
	comment.IsEdited = true

	if err := db.Save(&comment).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comment,
	})
}

// DeleteComment handles DELETE /api/v1/comments/:id - author only, removes
// the comment together with its reply thread and adjusts the target counter
func DeleteComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var comment models.Comment
	if err := db.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
		return
	}

	if comment.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another user's comment")
		return
	}

	if err := models.DeleteCommentCascade(db, comment.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment deleted",
	})
}
