package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Role values for User.Role
const (
	RoleUser     = "user"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name"`
	Email       string  `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Handle      *string `json:"handle,omitempty" gorm:"uniqueIndex"`
	Role        string  `json:"role" gorm:"type:varchar(20);default:'user'"`
	IsVerified  bool    `json:"is_verified" gorm:"default:false"` // Admin-granted badge for business accounts
	Password    string  `json:"-"`                                // Store hashed password, ignore for JSON serialization
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
}

// HasHandle reports whether the user finished onboarding. A stored handle does
// not count when the linked Firebase UID no longer matches the current session
// subject (the identity was deleted and recreated with the same e-mail).
func (u *User) HasHandle(sessionFirebaseUID string) bool {
	if u.Handle == nil || *u.Handle == "" {
		return false
	}
	if sessionFirebaseUID != "" && u.FirebaseUID != nil && *u.FirebaseUID != sessionFirebaseUID {
		return false
	}
	return true
}

// UserCompact is the summary shape embedded in search results and enriched records
type UserCompact struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Handle     *string `json:"handle,omitempty"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Name:       u.Name,
		Handle:     u.Handle,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Role     string `json:"role" validate:"required,oneof=user business admin"`
}

type SetHandleRequest struct {
	Handle string `json:"handle" validate:"required"`
	Name   string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	FirebaseUID string `json:"firebase_uid,omitempty"`
	HasHandle   bool   `json:"has_handle"` // Cached onboarding flag; may be stale right after set-handle
	jwt.RegisteredClaims
}
