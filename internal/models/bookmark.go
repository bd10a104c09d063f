package models

import "time"

// Bookmark represents a saved tasting note; unique per (user, note) and owned
// exclusively by the bookmarking user
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_note_bookmark"`
	NoteID    uint      `json:"note_id" gorm:"index;uniqueIndex:idx_user_note_bookmark"`
	CreatedAt time.Time `json:"created_at"`
}
