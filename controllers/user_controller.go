package controllers

import (
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/middleware"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/craftconnect/artisan-market-api/services"
	"github.com/gin-gonic/gin"
)

// CreateUserRequest carries the profile fields Auth0 does not know about
type CreateUserRequest struct {
	Username    string `json:"username" binding:"omitempty"`
	PhoneNumber string `json:"phone_number" binding:"omitempty"`
	Bio         string `json:"bio" binding:"omitempty,max=500"`
	Address     string `json:"address" binding:"omitempty"`
	City        string `json:"city" binding:"omitempty"`
	State       string `json:"state" binding:"omitempty"`
	Country     string `json:"country" binding:"omitempty"`
	PostalCode  string `json:"postal_code" binding:"omitempty"`
}

// UpdateUserRequest represents the request body for updating a user profile
type UpdateUserRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	Address     *string `json:"address" binding:"omitempty"`
	City        *string `json:"city" binding:"omitempty"`
	State       *string `json:"state" binding:"omitempty"`
	Country     *string `json:"country" binding:"omitempty"`
	PostalCode  *string `json:"postal_code" binding:"omitempty"`
}

// CreateUser handles POST /api/v1/users - creates a user account from Auth0
// userinfo plus the optional profile fields in the request body
func CreateUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	// Identity fields come from Auth0, not from the request body
	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "AUTH0_ERROR", "Failed to fetch user information from Auth0")
		return
	}

	if userInfo.Email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by Auth0")
		return
	}
	if userInfo.Name == "" {
		respondError(c, http.StatusBadRequest, "MISSING_NAME", "Name not provided by Auth0")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	username := req.Username
	if username == "" {
		username = userInfo.Nickname
	}
	if username == "" {
		respondError(c, http.StatusBadRequest, "MISSING_USERNAME", "Username is required")
		return
	}

	user := models.User{
		Auth0ID:     auth0ID,
		Email:       userInfo.Email,
		Username:    username,
		FullName:    userInfo.Name,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		IsActive:    true,
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		if models.IsUniqueViolation(err) {
			respondError(c, http.StatusConflict, "USER_EXISTS", "A user with this email, username or Auth0 ID already exists")
			return
		}
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetCurrentUser handles GET /api/v1/users/me - returns the caller's account
// with roles and artisan profile preloaded
func GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := db.Preload("Roles").Preload("ArtisanProfile").First(user, "id = ?", user.ID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load user details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetUser handles GET /api/v1/users/:id - returns a public view of a user
func GetUser(c *gin.Context) {
	db := config.GetDB()

	var user models.User
	if err := db.Preload("Roles").Preload("ArtisanProfile").First(&user, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateCurrentUser handles PATCH /api/v1/users/me - partial update of the
// caller's account fields
func UpdateCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.PostalCode != nil {
		user.PostalCode = *req.PostalCode
	}

	db := config.GetDB()
	if err := db.Save(user).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// DeleteCurrentUser handles DELETE /api/v1/users/me - removes the account and
// everything it owns. Reports the user reviewed as a moderator survive with
// the reviewer link cleared.
func DeleteCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	if err := models.DeleteUserCascade(db, user.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User account and all owned content deleted",
	})
}
