package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Action    string             `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	TargetID  string             `bson:"target_id" json:"target_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
