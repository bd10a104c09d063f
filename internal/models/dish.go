package models

import "gorm.io/gorm"

// Dish belongs to one restaurant and is managed by the restaurant's owner
type Dish struct {
	gorm.Model
	RestaurantID uint    `json:"restaurant_id" gorm:"index"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency" gorm:"type:varchar(3);default:'INR'"`
	Category     string  `json:"category"`
	IsAvailable  bool    `json:"is_available" gorm:"default:true"`
}

// DishFeedback is unique per (dish, user); resubmission overwrites the row
type DishFeedback struct {
	gorm.Model
	DishID  uint     `json:"dish_id" gorm:"index;uniqueIndex:idx_dish_user_feedback"`
	UserID  uint     `json:"user_id" gorm:"index;uniqueIndex:idx_dish_user_feedback"`
	Rating  int      `json:"rating"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" gorm:"serializer:json"`
}

// CreateDishRequest defines the request body for creating a new dish
type CreateDishRequest struct {
	RestaurantID uint    `json:"restaurant_id" validate:"required"`
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Description  string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Price        float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency     string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	Category     string  `json:"category,omitempty"`
}

// UpsertFeedbackRequest defines the request body for submitting dish feedback
type UpsertFeedbackRequest struct {
	Rating  int      `json:"rating" validate:"required,min=1,max=5"`
	Content string   `json:"content,omitempty" validate:"omitempty,max=500"`
	Tags    []string `json:"tags,omitempty"`
}
