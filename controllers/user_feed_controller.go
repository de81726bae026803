package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
)

// CreateUserFeedRequest represents the request body for posting a job request
type CreateUserFeedRequest struct {
	Title               string              `json:"title" binding:"required"`
	Description         string              `json:"description" binding:"required"`
	JobCategory         string              `json:"job_category" binding:"required"`
	BudgetRangeMin      *float64            `json:"budget_range_min" binding:"omitempty,gte=0"`
	BudgetRangeMax      *float64            `json:"budget_range_max" binding:"omitempty,gte=0"`
	InvoiceImage        string              `json:"invoice_image" binding:"required"`
	InvoiceAmount       float64             `json:"invoice_amount" binding:"required,gt=0"`
	InvoiceDate         *time.Time          `json:"invoice_date"`
	AdditionalDocuments string              `json:"additional_documents"`
	Location            string              `json:"location" binding:"required"`
	PreferredStartDate  *time.Time          `json:"preferred_start_date"`
	Deadline            *time.Time          `json:"deadline"`
	Priority            models.FeedPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// UpdateUserFeedRequest represents the request body for updating a job request
type UpdateUserFeedRequest struct {
	Title              *string              `json:"title"`
	Description        *string              `json:"description"`
	JobCategory        *string              `json:"job_category"`
	BudgetRangeMin     *float64             `json:"budget_range_min" binding:"omitempty,gte=0"`
	BudgetRangeMax     *float64             `json:"budget_range_max" binding:"omitempty,gte=0"`
	Location           *string              `json:"location"`
	PreferredStartDate *time.Time           `json:"preferred_start_date"`
	Deadline           *time.Time           `json:"deadline"`
	Status             *models.FeedStatus   `json:"status" binding:"omitempty,oneof=OPEN IN_REVIEW NEGOTIATING CLOSED COMPLETED CANCELLED"`
	Priority           *models.FeedPriority `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	IsActive           *bool                `json:"is_active"`
}

// CreateUserFeed handles POST /api/v1/user-feeds
func CreateUserFeed(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateUserFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.BudgetRangeMin != nil && req.BudgetRangeMax != nil && *req.BudgetRangeMin > *req.BudgetRangeMax {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Budget range minimum cannot exceed maximum")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	feed := models.UserFeed{
		UserID:              user.ID,
		Title:               req.Title,
		Description:         req.Description,
		JobCategory:         req.JobCategory,
		BudgetRangeMin:      req.BudgetRangeMin,
		BudgetRangeMax:      req.BudgetRangeMax,
		InvoiceImage:        req.InvoiceImage,
		InvoiceAmount:       req.InvoiceAmount,
		InvoiceDate:         req.InvoiceDate,
		AdditionalDocuments: req.AdditionalDocuments,
		Location:            req.Location,
		PreferredStartDate:  req.PreferredStartDate,
		Deadline:            req.Deadline,
		Status:              models.FeedOpen,
		Priority:            priority,
		IsActive:            true,
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

// ListUserFeeds handles GET /api/v1/user-feeds with optional filters:
// status, category, priority, user_id, plus limit/offset paging
func ListUserFeeds(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.UserFeed{}).Where("is_active = ?", true)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("job_category = ?", category)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	limit, offset := pagination(c)

	var feeds []models.UserFeed
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&feeds).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list feeds")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feeds,
	})
}

// GetUserFeed handles GET /api/v1/user-feeds/:slug - counts the view
func GetUserFeed(c *gin.Context) {
	db := config.GetDB()

	var feed models.UserFeed
	if err := db.Preload("User").First(&feed, "slug = ?", c.Param("slug")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Feed not found")
		return
	}

	if err := models.BumpViews(db, &models.UserFeed{}, feed.ID); err == nil {
		feed.ViewsCount++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feed,
	})
}

// UpdateUserFeed handles PATCH /api/v1/user-feeds/:id - owner only
func UpdateUserFeed(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var feed models.UserFeed
	if err := db.First(&feed, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Feed not found")
		return
	}

	if feed.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify another user's feed")
		return
	}

	var req UpdateUserFeedRequest
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
	if req.JobCategory != nil {
		feed.JobCategory = *req.JobCategory
	}
	if req.BudgetRangeMin != nil {
		feed.BudgetRangeMin = req.BudgetRangeMin
	}
	if req.BudgetRangeMax != nil {
		feed.BudgetRangeMax = req.BudgetRangeMax
	}
	if req.Location != nil {
		feed.Location = *req.Location
	}
	if req.PreferredStartDate != nil {
		feed.PreferredStartDate = req.PreferredStartDate
	}
	if req.Deadline != nil {
		feed.Deadline = req.Deadline
	}
	if req.Status != nil {
		feed.Status = *req.Status
	}
	if req.Priority != nil {
		feed.Priority = *req.Priority
	}
	if req.IsActive != nil {
		feed.IsActive = *req.IsActive
	}

	if feed.BudgetRangeMin != nil && feed.BudgetRangeMax != nil && *feed.BudgetRangeMin > *feed.BudgetRangeMax {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Budget range minimum cannot exceed maximum")
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

// DeleteUserFeed handles DELETE /api/v1/user-feeds/:id - owner only, removes
// the feed along with its comments, reactions, reports and proposals
func DeleteUserFeed(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var feed models.UserFeed
	if err := db.First(&feed, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "FEED_NOT_FOUND", "Feed not found")
		return
	}

	if feed.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another user's feed")
		return
	}

	if err := models.DeleteUserFeedCascade(db, feed.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feed deleted",
	})
}

// pagination reads limit/offset query parameters with sane bounds
func pagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
