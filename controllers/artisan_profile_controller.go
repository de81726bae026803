package controllers

import (
	"net/http"
	"strconv"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
)

// CreateArtisanProfileRequest represents the request body for creating an artisan profile
type CreateArtisanProfileRequest struct {
	BusinessName         string                    `json:"business_name" binding:"required"`
	Specialization       string                    `json:"specialization" binding:"required"`
	YearsOfExperience    int                       `json:"years_of_experience" binding:"gte=0"`
	ExperienceLevel      models.ExperienceLevel    `json:"experience_level" binding:"required,oneof=BEGINNER INTERMEDIATE EXPERIENCED EXPERT"`
	LicenseNumber        string                    `json:"license_number"`
	BusinessRegistration string                    `json:"business_registration"`
	TaxID                string                    `json:"tax_id"`
	InsuranceDetails     string                    `json:"insurance_details"`
	AvailabilityStatus   models.AvailabilityStatus `json:"availability_status" binding:"omitempty,oneof=AVAILABLE BUSY UNAVAILABLE"`
	HourlyRate           *float64                  `json:"hourly_rate" binding:"omitempty,gt=0"`
	ServiceRadiusKM      *int                      `json:"service_radius_km" binding:"omitempty,gt=0"`
	About                string                    `json:"about" binding:"omitempty,max=2000"`
	ServicesOffered      string                    `json:"services_offered" binding:"required"`
	Certification        string                    `json:"certification"`
}

// UpdateArtisanProfileRequest represents the request body for updating a profile.
// The slug is intentionally absent: it never changes after first assignment.
type UpdateArtisanProfileRequest struct {
	BusinessName       *string                    `json:"business_name"`
	Specialization     *string                    `json:"specialization"`
	YearsOfExperience  *int                       `json:"years_of_experience" binding:"omitempty,gte=0"`
	ExperienceLevel    *models.ExperienceLevel    `json:"experience_level" binding:"omitempty,oneof=BEGINNER INTERMEDIATE EXPERIENCED EXPERT"`
	LicenseNumber      *string                    `json:"license_number"`
	InsuranceDetails   *string                    `json:"insurance_details"`
	AvailabilityStatus *models.AvailabilityStatus `json:"availability_status" binding:"omitempty,oneof=AVAILABLE BUSY UNAVAILABLE"`
	HourlyRate         *float64                   `json:"hourly_rate" binding:"omitempty,gt=0"`
	ServiceRadiusKM    *int                       `json:"service_radius_km" binding:"omitempty,gt=0"`
	About              *string                    `json:"about" binding:"omitempty,max=2000"`
	ServicesOffered    *string                    `json:"services_offered"`
	Certification      *string                    `json:"certification"`
}

// CreateArtisanProfile handles POST /api/v1/artisans - creates the caller's
// artisan profile (one per user)
func CreateArtisanProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateArtisanProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	availability := req.AvailabilityStatus
	if availability == "" {
		availability = models.AvailabilityAvailable
	}

	profile := models.ArtisanProfile{
		UserID:               user.ID,
		User:                 *user,
		BusinessName:         req.BusinessName,
		Specialization:       req.Specialization,
		YearsOfExperience:    req.YearsOfExperience,
		ExperienceLevel:      req.ExperienceLevel,
		LicenseNumber:        req.LicenseNumber,
		BusinessRegistration: req.BusinessRegistration,
		TaxID:                req.TaxID,
		InsuranceDetails:     req.InsuranceDetails,
		AvailabilityStatus:   availability,
		HourlyRate:           req.HourlyRate,
		ServiceRadiusKM:      req.ServiceRadiusKM,
		About:                req.About,
		ServicesOffered:      req.ServicesOffered,
		Certification:        req.Certification,
	}

	db := config.GetDB()
	if err := db.Omit("User").Create(&profile).Error; err != nil {
		if models.IsUniqueViolation(err) {
			respondError(c, http.StatusConflict, "PROFILE_EXISTS", "User already has an artisan profile or the slug is taken")
			return
		}
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// ListArtisanProfiles handles GET /api/v1/artisans with optional filters:
// specialization, availability, min_rating, verified
func ListArtisanProfiles(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.ArtisanProfile{}).Preload("User")

	if spec := c.Query("specialization"); spec != "" {
		query = query.Where("specialization = ?", spec)
	}
	if avail := c.Query("availability"); avail != "" {
		query = query.Where("availability_status = ?", avail)
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		rating, err := strconv.ParseFloat(minRating, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "min_rating must be a number")
			return
		}
		query = query.Where("average_rating >= ?", rating)
	}
	if verified := c.Query("verified"); verified == "true" {
		query = query.Where("is_verified = ?", true)
	}

	var profiles []models.ArtisanProfile
	if err := query.Order("average_rating DESC, completed_projects DESC").Find(&profiles).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list artisan profiles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profiles,
	})
}

// GetArtisanProfile handles GET /api/v1/artisans/:slug
func GetArtisanProfile(c *gin.Context) {
	db := config.GetDB()

	var profile models.ArtisanProfile
	if err := db.Preload("User").First(&profile, "slug = ?", c.Param("slug")).Error; err != nil {
		respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", "Artisan profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateCurrentArtisanProfile handles PATCH /api/v1/artisans/me
func UpdateCurrentArtisanProfile(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	var req UpdateArtisanProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.BusinessName != nil {
		profile.BusinessName = *req.BusinessName
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = *req.LicenseNumber
	}
	if req.InsuranceDetails != nil {
		profile.InsuranceDetails = *req.InsuranceDetails
	}
	if req.AvailabilityStatus != nil {
		profile.AvailabilityStatus = *req.AvailabilityStatus
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = req.HourlyRate
	}
	if req.ServiceRadiusKM != nil {
		profile.ServiceRadiusKM = req.ServiceRadiusKM
	}
	if req.About != nil {
		profile.About = *req.About
	}
	if req.ServicesOffered != nil {
		profile.ServicesOffered = *req.ServicesOffered
	}
	if req.Certification != nil {
		profile.Certification = *req.Certification
	}

	db := config.GetDB()
	if err := db.Omit("User").Save(profile).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// DeleteCurrentArtisanProfile handles DELETE /api/v1/artisans/me - removes
// the profile with its portfolio, feed posts and proposals
func DeleteCurrentArtisanProfile(c *gin.Context) {
	_, profile, ok := currentArtisan(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := models.DeleteArtisanProfileCascade(db, profile.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete artisan profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Artisan profile and all owned content deleted",
	})
}
