package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is a student submission. Pdf holds the stored file path relative
// to the upload directory; StudentID is a non-owning reference.
type Assignment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Pdf         string             `json:"pdf" bson:"pdf"`
	StudentID   primitive.ObjectID `json:"studentId" bson:"studentId"`
	Remarks     string             `json:"remarks" bson:"remarks"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AssignmentWithStudent is the admin listing projection: the assignment joined
// with its student's name and email. Read-only, never stored.
type AssignmentWithStudent struct {
	Assignment      `bson:",inline"`
	StudentFullName string `json:"studentFullName" bson:"studentFullName"`
	StudentEmail    string `json:"studentEmail" bson:"studentEmail"`
}

type RemarkRequest struct {
	Remark string `json:"remark"`
}
