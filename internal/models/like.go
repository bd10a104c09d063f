package models

import "time"

// Like represents a like on a tasting note; unique per (note, user)
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	NoteID    uint      `json:"note_id" gorm:"index;uniqueIndex:idx_note_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_note_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
