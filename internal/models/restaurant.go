package models

import "gorm.io/gorm"

// Restaurant represents a restaurant listing. User-suggested restaurants start
// unverified; only an admin verify action or owner edits mutate them.
type Restaurant struct {
	gorm.Model
	OwnerID    uint     `json:"owner_id" gorm:"index"`
	Name       string   `json:"name" gorm:"uniqueIndex"`
	Address    string   `json:"address"`
	Area       string   `json:"area"`
	Categories []string `json:"categories" gorm:"serializer:json"`
	IsVerified bool     `json:"is_verified" gorm:"default:false"`
}

// SuggestRestaurantRequest defines the request body for suggesting a new restaurant
type SuggestRestaurantRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	Address    string   `json:"address" validate:"required"`
	Area       string   `json:"area,omitempty"`
	Categories []string `json:"categories" validate:"required,min=1"`
}

// VerifyRestaurantRequest defines the request body for the admin verify action
type VerifyRestaurantRequest struct {
	IsVerified *bool `json:"is_verified" validate:"required"`
}
