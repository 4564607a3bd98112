package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember represents a person shown on the public team page
type TeamMember struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Role      string             `json:"role" bson:"role"`
	Bio       string             `json:"bio" bson:"bio"`
	PhotoURL  string             `json:"photo_url" bson:"photo_url"`
	Order     int                `json:"order" bson:"order"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateTeamMemberRequest represents the admin payload for a new member.
// The photo arrives as a multipart file next to these fields.
type CreateTeamMemberRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Role  string `json:"role" validate:"required"`
	Bio   string `json:"bio"`
	Order int    `json:"order"`
}

// UpdateTeamMemberRequest updates member fields selectively
type UpdateTeamMemberRequest struct {
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
	Bio   *string `json:"bio,omitempty"`
	Order *int    `json:"order,omitempty"`
}
