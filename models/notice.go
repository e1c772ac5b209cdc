package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notice is an admin-published announcement with optional image and file
// attachments. Notices are never mutated in place.
type Notice struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	File        string             `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
