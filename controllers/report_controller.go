package controllers

import (
	"net/http"
	"time"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateReportRequest represents the request body for flagging content
type CreateReportRequest struct {
	ContentType    models.ReportTarget `json:"content_type" binding:"required,oneof=USER_FEED ARTISAN_FEED COMMENT USER"`
	UserFeedID     *string             `json:"user_feed_id"`
	ArtisanFeedID  *string             `json:"artisan_feed_id"`
	CommentID      *string             `json:"comment_id"`
	ReportedUserID *string             `json:"reported_user_id"`
	Reason         models.ReportReason `json:"reason" binding:"required"`
	Description    string              `json:"description" binding:"required"`
}

// ReviewReportRequest represents the request body for moving a report through
// the moderation workflow
type ReviewReportRequest struct {
	Status          models.ReportStatus `json:"status" binding:"required,oneof=UNDER_REVIEW RESOLVED DISMISSED"`
	ResolutionNotes string              `json:"resolution_notes"`
}

// CreateReport handles POST /api/v1/reports - writes the report and, for feed
// targets, bumps the feed's reports_count in one transaction
func CreateReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	db := config.GetDB()
	target, targetID := reportTarget(req)
	if targetID == nil {
		respondError(c, http.StatusBadRequest, "INVALID_TARGET", "content_type requires the matching target id")
		return
	}
	var count int64
	if err := db.Model(target).Where("id = ?", *targetID).Count(&count).Error; err != nil || count == 0 {
		respondError(c, http.StatusNotFound, "TARGET_NOT_FOUND", "Report target not found")
		return
	}

	report := models.Report{
		ReporterID:     user.ID,
		ContentType:    req.ContentType,
		UserFeedID:     req.UserFeedID,
		ArtisanFeedID:  req.ArtisanFeedID,
		CommentID:      req.CommentID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Description:    req.Description,
		Status:         models.ReportPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		return models.AdjustReportCounters(tx, &report, 1)
	})
	if err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    report,
	})
}

// ListReports handles GET /api/v1/reports - moderators only, optional status
// and content_type filters, oldest pending first
func ListReports(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Report{}).Preload("Reporter").Preload("ReviewedBy")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if contentType := c.Query("content_type"); contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}

	limit, offset := pagination(c)

	var reports []models.Report
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&reports).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reports,
	})
}

// GetReport handles GET /api/v1/reports/:id - moderators only
func GetReport(c *gin.Context) {
	db := config.GetDB()

	var report models.Report
	err := db.Preload("Reporter").Preload("ReviewedBy").First(&report, "id = ?", c.Param("id")).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "REPORT_NOT_FOUND", "Report not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// ReviewReport handles PATCH /api/v1/reports/:id - moderators only, moves the
// report along PENDING -> UNDER_REVIEW -> {RESOLVED, DISMISSED} and records
// the reviewer
func ReviewReport(c *gin.Context) {
	moderator, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var report models.Report
	if err := db.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "REPORT_NOT_FOUND", "Report not found")
		return
	}

	var req ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if !report.Status.CanTransitionTo(req.Status) {
		respondError(c, http.StatusBadRequest, "INVALID_TRANSITION",
			"Report cannot move from "+string(report.Status)+" to "+string(req.Status))
		return
	}

	now := time.Now()
	report.Status = req.Status
	report.ReviewedByID = &moderator.ID
	report.ReviewedAt = &now
	if req.ResolutionNotes != "" {
		report.ResolutionNotes = req.ResolutionNotes
	}

	if err := db.Save(&report).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// reportTarget maps the discriminator to the model and the foreign key the
// request must carry. A nil id means the request named a content type but
// left its matching id out.
func reportTarget(req CreateReportRequest) (interface{}, *string) {
	switch req.ContentType {
	case models.ReportOnUserFeed:
		return &models.UserFeed{}, req.UserFeedID
	case models.ReportOnArtisanFeed:
		return &models.ArtisanFeed{}, req.ArtisanFeedID
	case models.ReportOnComment:
		return &models.Comment{}, req.CommentID
	case models.ReportOnUser:
		return &models.User{}, req.ReportedUserID
	}
	return nil, nil
}
