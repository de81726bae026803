package controllers

import (
	"net/http"
	"time"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
)

// CreateArtisanFeedRequest represents the request body for an artisan post
type CreateArtisanFeedRequest struct {
	Title              string          `json:"title" binding:"required"`
	Description        string          `json:"description" binding:"required"`
	PostType           models.PostType `json:"post_type" binding:"omitempty,oneof=SERVICE PROMOTION SHOWCASE TIP ANNOUNCEMENT"`
	ServiceCategory    string          `json:"service_category"`
	FeaturedImage      string          `json:"featured_image" binding:"required"`
	VideoURL           *string         `json:"video_url"`
	Price              *float64        `json:"price" binding:"omitempty,gt=0"`
	DiscountPercentage *int            `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
	ValidFrom          *time.Time      `json:"valid_from"`
	ValidUntil         *time.Time      `json:"valid_until"`
}

// UpdateArtisanFeedRequest represents the request body for updating a post
type UpdateArtisanFeedRequest struct {
	Title              *string          `json:"title"`
	Description        *string          `json:"description"`
	PostType           *models.PostType `json:"post_type" binding:"omitempty,oneof=SERVICE PROMOTION SHOWCASE TIP ANNOUNCEMENT"`
	ServiceCategory    *string          `json:"service_category"`
	FeaturedImage      *string          `json:"featured_image"`
	VideoURL           *string          `json:"video_url"`
	Price              *float64         `json:"price" binding:"omitempty,gt=0"`
	DiscountPercentage *int             `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
	ValidFrom          *time.Time       `json:"valid_from"`
	ValidUntil         *time.Time       `json:"valid_until"`
	IsActive           *bool            `json:"is_active"`
	IsFeatured         *bool            `json:"is_featured"`
}

// CreateArtisanFeed handles POST /api/v1/artisan-feeds
func CreateArtisanFeed(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	var req CreateArtisanFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validity window end precedes its start")
		return
	}

	postType := req.PostType
	if postType == "" {
		postType = models.PostService
	}

	feed := models.ArtisanFeed{
		ArtisanID:          profile.ID,
		Title:              req.Title,
		Description:        req.Description,
		PostType:           postType,
		ServiceCategory:    req.ServiceCategory,
		FeaturedImage:      req.FeaturedImage,
		VideoURL:           req.VideoURL,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		IsActive:           true,
	}

	db := config.GetDB()
	if err := db.Create(&feed).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    feed,
	})
}

// ListArtisanFeeds handles GET /api/v1/artisan-feeds with optional filters:
// post_type, category, artisan_id, plus limit/offset paging. Promoted posts
// surface first.
func ListArtisanFeeds(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.ArtisanFeed{}).Where("is_active = ?", true)
	if postType := c.Query("post_type"); postType != "" {
		query = query.Where("post_type = ?", postType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("service_category = ?", category)
	}
	if artisanID := c.Query("artisan_id"); artisanID != "" {
		query = query.Where("artisan_id = ?", artisanID)
	}

	limit, offset := pagination(c)

	var feeds []models.ArtisanFeed
	err := query.Order("is_promoted DESC, created_at DESC").Limit(limit).Offset(offset).Find(&feeds).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feeds,
	})
}

// GetArtisanFeed handles GET /api/v1/artisan-feeds/:slug - counts the view
func GetArtisanFeed(c *gin.Context) {
	db := config.GetDB()

	var feed models.ArtisanFeed
	if err := db.Preload("Artisan").First(&feed, "slug = ?", c.Param("slug")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Post not found")
		return
	}

	if err := models.BumpViews(db, &models.ArtisanFeed{}, feed.ID); err == nil {
		feed.ViewsCount++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feed,
	})
}

// ShareArtisanFeed handles POST /api/v1/artisan-feeds/:id/share - records a
// share without any other side effect
func ShareArtisanFeed(c *gin.Context) {
	db := config.GetDB()

	var feed models.ArtisanFeed
	if err := db.First(&feed, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Post not found")
		return
	}

	if err := models.BumpShares(db, feed.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record share")
		return
	}
	feed.SharesCount++

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feed,
	})
}

// UpdateArtisanFeed handles PATCH /api/v1/artisan-feeds/:id - owner only
func UpdateArtisanFeed(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var feed models.ArtisanFeed
	if err := db.First(&feed, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Post not found")
		return
	}

	if feed.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify another artisan's post")
		return
	}

	var req UpdateArtisanFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.Title != nil {
		feed.Title = *req.Title
	}
	if req.Description != nil {
		feed.Description = *req.Description
	}
	if req.PostType != nil {
		feed.PostType = *req.PostType
	}
	if req.ServiceCategory != nil {
		feed.ServiceCategory = *req.ServiceCategory
	}
	if req.FeaturedImage != nil {
		feed.FeaturedImage = *req.FeaturedImage
	}
	if req.VideoURL != nil {
		feed.VideoURL = req.VideoURL
	}
	if req.Price != nil {
		feed.Price = req.Price
	}
	if req.DiscountPercentage != nil {
		feed.DiscountPercentage = req.DiscountPercentage
	}
	if req.ValidFrom != nil {
		feed.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		feed.ValidUntil = req.ValidUntil
	}
	if req.IsActive != nil {
		feed.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		feed.IsFeatured = *req.IsFeatured
	}

	if feed.ValidFrom != nil && feed.ValidUntil != nil && feed.ValidUntil.Before(*feed.ValidFrom) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validity window end precedes its start")
		return
	}

	if err := db.Save(&feed).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feed,
	})
}

// DeleteArtisanFeed handles DELETE /api/v1/artisan-feeds/:id - owner only,
// removes the post along with its comments, reactions and reports
func DeleteArtisanFeed(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var feed models.ArtisanFeed
	if err := db.First(&feed, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Post not found")
		return
	}

	if feed.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another artisan's post")
		return
	}

	if err := models.DeleteArtisanFeedCascade(db, feed.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted",
	})
}
