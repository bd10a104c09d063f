package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a group chat message stored in MongoDB
type Message struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	GroupID   uint               `json:"group_id" bson:"group_id"`
	SenderID  uint               `json:"sender_id" bson:"sender_id"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateMessageRequest defines the request body for posting a group message
type CreateMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
