package controllers

import (
	"net/http"

	"github.com/craftconnect/artisan-market-api/config"
	"github.com/craftconnect/artisan-market-api/models"
	"github.com/gin-gonic/gin"
)

// AssignRoleRequest represents the request body for assigning a role
type AssignRoleRequest struct {
	RoleType  models.RoleType `json:"role_type" binding:"required"`
	IsPrimary bool            `json:"is_primary"`
}

// UpdateRoleRequest represents the request body for updating a role
type UpdateRoleRequest struct {
	IsPrimary *bool `json:"is_primary"`
	IsActive  *bool `json:"is_active"`
}

// AssignRole handles POST /api/v1/users/me/roles - assigns a role to the
// caller. Marking it primary demotes any existing primary role in the same
// transaction.
func AssignRole(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	role := models.Role{
		UserID:    user.ID,
		RoleType:  req.RoleType,
		IsPrimary: req.IsPrimary,
		IsActive:  true,
	}

	db := config.GetDB()
	if err := db.Create(&role).Error; err != nil {
		if models.IsUniqueViolation(err) {
			respondError(c, http.StatusConflict, "DUPLICATE_ROLE", "User already has this role")
			return
		}
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    role,
	})
}

// ListUserRoles handles GET /api/v1/users/:id/roles
func ListUserRoles(c *gin.Context) {
	db := config.GetDB()

	var roles []models.Role
	err := db.Where("user_id = ?", c.Param("id")).
		Order("is_primary DESC, role_type ASC").
		Find(&roles).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list roles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    roles,
	})
}

// UpdateRole handles PATCH /api/v1/roles/:id - toggles primary/active flags
// on one of the caller's roles
func UpdateRole(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var role models.Role
	if err := db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ROLE_NOT_FOUND", "Role not found")
		return
	}

	if role.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify another user's role")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	if req.IsPrimary != nil {
		role.IsPrimary = *req.IsPrimary
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	// Save runs the demotion hook inside its own transaction
	if err := db.Save(&role).Error; err != nil {
		handleWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    role,
	})
}

// RemoveRole handles DELETE /api/v1/roles/:id
func RemoveRole(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var role models.Role
	if err := db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ROLE_NOT_FOUND", "Role not found")
		return
	}

	if role.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Cannot remove another user's role")
		return
	}

	if err := db.Delete(&role).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove role")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Role removed",
	})
}
