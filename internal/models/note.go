package models

import "gorm.io/gorm"

// TastingNote is a user's review post, optionally tied to a restaurant/dish.
// LikesCount and CommentsCount are denormalized and kept consistent with the
// likes/comments tables by paired counter updates in the repositories.
type TastingNote struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index"`
	RestaurantID  *uint  `json:"restaurant_id,omitempty" gorm:"index"`
	DishID        *uint  `json:"dish_id,omitempty"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Rating        *int   `json:"rating,omitempty"`
	LikesCount    int    `json:"likes_count" gorm:"default:0"`
	CommentsCount int    `json:"comments_count" gorm:"default:0"`
}

// CreateNoteRequest defines the request body for posting a tasting note
type CreateNoteRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=120"`
	Content      string `json:"content" validate:"required,min=1,max=2000"`
	RestaurantID *uint  `json:"restaurant_id,omitempty"`
	DishID       *uint  `json:"dish_id,omitempty"`
	Rating       *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
