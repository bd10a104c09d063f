package models

import (
	"time"

	"gorm.io/gorm"
)

// Group member roles
const (
	GroupRoleMember = "member"
	GroupRoleAdmin  = "admin"
)

// Group is a chat group; the creator becomes its first admin member
type Group struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"owner_id" gorm:"index"`
	InviteCode  string `json:"invite_code" gorm:"uniqueIndex"`
}

// GroupMember represents membership of a user in a group; unique per (group, user)
type GroupMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   uint      `json:"group_id" gorm:"index;uniqueIndex:idx_group_user_member"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_group_user_member"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:'member'"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// JoinGroupRequest defines the request body for joining a group by invite code
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}
