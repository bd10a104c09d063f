package models

import "gorm.io/gorm"

// FriendRequest statuses
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// FriendRequest represents a friend request between two users; unique per
// (sender, receiver) so racing duplicate sends collapse at the storage layer
type FriendRequest struct {
	gorm.Model
	SenderID   uint   `json:"sender_id" gorm:"index;uniqueIndex:idx_sender_receiver"`
	ReceiverID uint   `json:"receiver_id" gorm:"index;uniqueIndex:idx_sender_receiver"`
	Status     string `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// UpdateFriendRequest defines the request body for accepting/rejecting a friend request
type UpdateFriendRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
