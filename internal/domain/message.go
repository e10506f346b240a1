package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one chat message inside an exchange conversation.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExchangeID string             `bson:"exchange_id" json:"exchange_id"`
	SenderID   string             `bson:"sender_id" json:"sender_id"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type SendMessageInput struct {
	Text string `json:"text" binding:"required,max=2000"`
}
