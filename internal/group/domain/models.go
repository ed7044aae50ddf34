// Package domain contains persistence models for the group service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Group is an association of users with a creator and an admin hierarchy.
type Group struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Kind      string       `gorm:"type:text;not null;index" json:"kind"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;index" json:"slug"`
	Info      string       `gorm:"type:text" json:"info"`
	Website   string       `gorm:"type:text" json:"website"`
	CreatorID snowflake.ID `gorm:"not null;index" json:"creator_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Group) TableName() string { return "groups" }

// GroupMember represents membership of a user in a group. Admins are
// members whose role is RoleAdmin; revoking admin keeps the row with
// RoleMember.
type GroupMember struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	GroupID   snowflake.ID `gorm:"not null;index;uniqueIndex:ux_group_user,priority:1" json:"group_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_group_user,priority:2" json:"user_id"`
	Role      string       `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (GroupMember) TableName() string { return "group_members" }

// Application is a pending request by a non-member to join a group.
// Re-applying refreshes CreatedAt instead of inserting a second row.
type Application struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	GroupID   snowflake.ID `gorm:"not null;index;uniqueIndex:ux_application_group_user,priority:1" json:"group_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_application_group_user,priority:2" json:"user_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Application) TableName() string { return "group_applications" }

// Invitation is an admin-issued offer of membership redeemed with a
// bearer secret key.
type Invitation struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	GroupID   snowflake.ID `gorm:"not null;index" json:"group_id"`
	InvitedBy snowflake.ID `gorm:"column:invited_by;not null;index" json:"invited_by"`
	Email     string       `gorm:"type:text;not null" json:"email"`
	SecretKey string       `gorm:"column:secret_key;type:text;not null;uniqueIndex:ux_invitation_secret_key" json:"-"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "group_invitations" }
