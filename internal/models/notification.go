package models

import "time"

// Notification types fanned out by the handlers
const (
	NotificationTypeLike               = "like"
	NotificationTypeComment            = "comment"
	NotificationTypeFollow             = "follow"
	NotificationTypeFriendRequest      = "friend_request"
	NotificationTypeFriendAccepted     = "friend_accepted"
	NotificationTypeRestaurantVerified = "restaurant_verified"
)

// Notification belongs to exactly one recipient. Rows are append-only except
// for the is_read/read_at pair, which only ever moves from unread to read.
type Notification struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Type        string         `json:"type" gorm:"size:30;index"`
	ActorID     uint           `json:"actor_id" gorm:"index"`
	RecipientID uint           `json:"recipient_id" gorm:"index"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Link        string         `json:"link,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	IsRead      bool           `json:"is_read" gorm:"default:false;index"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}
