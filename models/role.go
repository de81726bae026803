package models

import (
	"time"

	"gorm.io/gorm"
)

// RoleType identifies what a user can do on the platform. A user may hold
// several roles (e.g. USER plus PLUMBER) but only one is primary.
type RoleType string

const (
	RoleUser        RoleType = "USER"
	RoleArtisan     RoleType = "ARTISAN"
	RoleMason       RoleType = "MASON"
	RolePlumber     RoleType = "PLUMBER"
	RoleElectrician RoleType = "ELECTRICIAN"
	RoleCarpenter   RoleType = "CARPENTER"
	RolePainter     RoleType = "PAINTER"
	RoleTiler       RoleType = "TILER"
	RoleRoofer      RoleType = "ROOFER"
	RoleAdmin       RoleType = "ADMIN"
	RoleModerator   RoleType = "MODERATOR"
)

// IsValid reports whether the role type is one of the supported values
func (r RoleType) IsValid() bool {
	switch r {
	case RoleUser, RoleArtisan, RoleMason, RolePlumber, RoleElectrician,
		RoleCarpenter, RolePainter, RoleTiler, RoleRoofer, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Role assigns a role type to a user. (user_id, role_type) is unique and at
// most one role per user may be primary at any time.
type Role struct {
	ID        string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string   `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_role_type" json:"user_id"`
	User      User     `gorm:"foreignKey:UserID" json:"-"`
	RoleType  RoleType `gorm:"size:20;not null;uniqueIndex:idx_user_role_type" json:"role_type"`
	IsPrimary bool     `gorm:"default:false" json:"is_primary"`
	IsActive  bool     `gorm:"default:true" json:"is_active"`

	AssignedAt time.Time      `gorm:"autoCreateTime" json:"assigned_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate assigns a random UUID primary key. A previously removed role
// leaves a soft-deleted row behind that still occupies the (user_id,
// role_type) unique index, so re-assigning the same role type would conflict;
// the stale row is purged before the insert.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return tx.Unscoped().
		Where("user_id = ? AND role_type = ? AND deleted_at IS NOT NULL", r.UserID, r.RoleType).
		Delete(&Role{}).Error
}

// BeforeSave keeps the single-primary-role invariant: marking this role as
// primary demotes every other primary role of the same user. The demotion
// runs inside the transaction that persists this role, so concurrent
// primary-assignment requests cannot leave two primary roles behind.
func (r *Role) BeforeSave(tx *gorm.DB) error {
	if !r.RoleType.IsValid() {
		return &ValidationError{
			Code:    "INVALID_ROLE_TYPE",
			Message: "Role type must be one of the supported role values",
		}
	}

	if r.IsPrimary {
		// UpdateColumn: the demotion must not re-enter this hook.
		err := tx.Model(&Role{}).
			Where("user_id = ? AND is_primary = ? AND id <> ?", r.UserID, true, r.ID).
			UpdateColumn("is_primary", false).Error
		if err != nil {
			return err
		}
	}

	return nil
}
