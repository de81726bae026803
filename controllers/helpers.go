package controllers

import (
	"errors"
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/middleware"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// handleWriteError translates model-hook and database errors into the
// appropriate HTTP response. Validation errors from hooks keep their code;
// uniqueness violations become 409s; everything else is a 500.
func handleWriteError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		switch verr.Code {
		case "DUPLICATE_REACTION", "DUPLICATE_PROPOSAL":
			status = http.StatusConflict
		}
		respondError(c, status, verr.Code, verr.Message)
		return
	}

	if models.IsUniqueViolation(err) {
		respondError(c, http.StatusConflict, "ALREADY_EXISTS", "A record with these unique values already exists")
		return
	}

	respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to write to database")
}

// currentUser resolves the authenticated Auth0 subject to a User row.
// Writes the error response and returns ok=false when that fails.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User profile not found. Please create a profile first.")
		return nil, false
	}

	return &user, true
}

// currentArtisan resolves the authenticated user and requires an artisan
// profile to exist for them.
func currentArtisan(c *gin.Context) (*models.User, *models.ArtisanProfile, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, false
	}

	db := config.GetDB()
	var profile models.ArtisanProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		respondError(c, http.StatusForbidden, "NOT_AN_ARTISAN", "Only artisans with a profile can perform this action")
		return nil, nil, false
	}

	return user, &profile, true
}
