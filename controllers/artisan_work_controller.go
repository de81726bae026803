package controllers

import (
	"net/http"
	"time"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateWorkRequest represents the request body for adding a portfolio work
type CreateWorkRequest struct {
	Title             string               `json:"title" binding:"required"`
	Description       string               `json:"description" binding:"required"`
	ProjectType       string               `json:"project_type" binding:"required"`
	ProjectStatus     models.ProjectStatus `json:"project_status" binding:"omitempty,oneof=COMPLETED IN_PROGRESS PLANNED"`
	DurationDays      int                  `json:"duration_days" binding:"gte=0"`
	ProjectCost       *float64             `json:"project_cost" binding:"omitempty,gt=0"`
	Location          string               `json:"location" binding:"required"`
	FeaturedImage     string               `json:"featured_image" binding:"required"`
	ClientName        string               `json:"client_name"`
	ClientTestimonial string               `json:"client_testimonial"`
	ClientRating      *int                 `json:"client_rating" binding:"omitempty,gte=1,lte=5"`
	CompletionDate    *time.Time           `json:"completion_date"`
	IsPublic          *bool                `json:"is_public"`
}

// UpdateWorkRequest represents the request body for updating a portfolio work
type UpdateWorkRequest struct {
	Title             *string               `json:"title"`
	Description       *string               `json:"description"`
	ProjectStatus     *models.ProjectStatus `json:"project_status" binding:"omitempty,oneof=COMPLETED IN_PROGRESS PLANNED"`
	DurationDays      *int                  `json:"duration_days" binding:"omitempty,gte=0"`
	ProjectCost       *float64              `json:"project_cost" binding:"omitempty,gt=0"`
	Location          *string               `json:"location"`
	FeaturedImage     *string               `json:"featured_image"`
	ClientName        *string               `json:"client_name"`
	ClientTestimonial *string               `json:"client_testimonial"`
	ClientRating      *int                  `json:"client_rating" binding:"omitempty,gte=1,lte=5"`
	CompletionDate    *time.Time            `json:"completion_date"`
	IsFeatured        *bool                 `json:"is_featured"`
	IsPublic          *bool                 `json:"is_public"`
}

// AddWorkImageRequest represents the request body for adding a gallery image
type AddWorkImageRequest struct {
	Image   string `json:"image" binding:"required"`
	Caption string `json:"caption"`
	Order   int    `json:"order" binding:"gte=0"`
}

// CreateWork handles POST /api/v1/artisans/me/works
func CreateWork(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	status := req.ProjectStatus
	if status == "" {
		status = models.ProjectCompleted
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	work := models.ArtisanWork{
		ArtisanID:         profile.ID,
		Title:             req.Title,
		Description:       req.Description,
		ProjectType:       req.ProjectType,
		ProjectStatus:     status,
		DurationDays:      req.DurationDays,
		ProjectCost:       req.ProjectCost,
		Location:          req.Location,
		FeaturedImage:     req.FeaturedImage,
		ClientName:        req.ClientName,
		ClientTestimonial: req.ClientTestimonial,
		ClientRating:      req.ClientRating,
		CompletionDate:    req.CompletionDate,
		IsPublic:          isPublic,
	}

	db := config.GetDB()
	if err := db.Create(&work).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    work,
	})
}

// ListArtisanWorks handles GET /api/v1/artisans/:slug/works - public works
// of one artisan, featured first
func ListArtisanWorks(c *gin.Context) {
	db := config.GetDB()

	var profile models.ArtisanProfile
	if err := db.First(&profile, "slug = ?", c.Param("slug")).Error; err != nil {
		respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Artisan profile not found")
		return
	}

	var works []models.ArtisanWork
	err := db.Where("artisan_id = ? AND is_public = ?", profile.ID, true).
		Order("is_featured DESC, created_at DESC").
		Find(&works).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list works")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    works,
	})
}

// GetWork handles GET /api/v1/works/:slug - returns a work with its gallery
// images ordered by (order, uploaded_at), counting the view
func GetWork(c *gin.Context) {
	db := config.GetDB()

	var work models.ArtisanWork
	err := db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, uploaded_at ASC")
	}).First(&work, "slug = ?", c.Param("slug")).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		return
	}

	if err := models.BumpViews(db, &models.ArtisanWork{}, work.ID); err == nil {
		work.ViewsCount++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    work,
	})
}

// UpdateWork handles PATCH /api/v1/works/:id
func UpdateWork(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var work models.ArtisanWork
	if err := db.First(&work, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		return
	}

	if work.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify another artisan's work")
		return
	}

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.Title != nil {
		work.Title = *req.Title
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.ProjectStatus != nil {
		work.ProjectStatus = *req.ProjectStatus
	}
	if req.DurationDays != nil {
		work.DurationDays = *req.DurationDays
	}
	if req.ProjectCost != nil {
		work.ProjectCost = req.ProjectCost
	}
	if req.Location != nil {
		work.Location = *req.Location
	}
	if req.FeaturedImage != nil {
		work.FeaturedImage = *req.FeaturedImage
	}
	if req.ClientName != nil {
		work.ClientName = *req.ClientName
	}
	if req.ClientTestimonial != nil {
		work.ClientTestimonial = *req.ClientTestimonial
	}
	if req.ClientRating != nil {
		work.ClientRating = req.ClientRating
	}
	if req.CompletionDate != nil {
		work.CompletionDate = req.CompletionDate
	}
	if req.IsFeatured != nil {
		work.IsFeatured = *req.IsFeatured
	}
	if req.IsPublic != nil {
		work.IsPublic = *req.IsPublic
	}

	if err := db.Save(&work).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    work,
	})
}

// DeleteWork handles DELETE /api/v1/works/:id - removes the work and its
// gallery images
func DeleteWork(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var work models.ArtisanWork
	if err := db.First(&work, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		return
	}

	if work.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another artisan's work")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", work.ID).Delete(&models.ArtisanWorkImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&work).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete work")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Work deleted",
	})
}

// AddWorkImage handles POST /api/v1/works/:id/images
func AddWorkImage(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var work models.ArtisanWork
	if err := db.First(&work, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "WORK_NOT_FOUND", "Work not found")
		return
	}

	if work.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify another artisan's work")
		return
	}

	var req AddWorkImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	image := models.ArtisanWorkImage{
		WorkID:  work.ID,
		Image:   req.Image,
		Caption: req.Caption,
		Order:   req.Order,
	}

	if err := db.Create(&image).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    image,
	})
}

// DeleteWorkImage handles DELETE /api/v1/work-images/:id
func DeleteWorkImage(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var image models.ArtisanWorkImage
	if err := db.Preload("Work").First(&image, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Image not found")
		return
	}

	if image.Work.ArtisanID != profile.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another artisan's image")
		return
	}

	if err := db.Delete(&image).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted",
	})
}
