package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a registered portal user. The password digest is bson-only:
// json:"-" keeps it off the wire no matter which handler serializes the record.
type Student struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName    string             `json:"fullName" bson:"fullName"`
	Email       string             `json:"email" bson:"email"`
	Age         int                `json:"age" bson:"age"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Password    string             `json:"-" bson:"password"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// StudentSummary is the identity projection returned on login.
type StudentSummary struct {
	ID       primitive.ObjectID `json:"id"`
	FullName string             `json:"fullName"`
	Email    string             `json:"email"`
}

type RegisterRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Age         int    `json:"age" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type EditProfileRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Age             int    `json:"age" validate:"required"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
