package models

import "gorm.io/gorm"

// Comment represents a comment on a tasting note. Top-level comments may have
// replies via ParentID; deleting a comment removes its replies.
type Comment struct {
	gorm.Model
	NoteID   uint   `json:"note_id" gorm:"index"`
	UserID   uint   `json:"user_id" gorm:"index"`
	ParentID *uint  `json:"parent_id,omitempty" gorm:"index"`
	Content  string `json:"content" validate:"required,min=1,max=500"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
