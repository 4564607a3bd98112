package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings is the single document of site-wide editable content
type SiteSettings struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FoundationName string             `json:"foundation_name" bson:"foundation_name"`
	Tagline        string             `json:"tagline" bson:"tagline"`
	AboutText      string             `json:"about_text" bson:"about_text"`
	ContactEmail   string             `json:"contact_email" bson:"contact_email"`
	ContactPhone   string             `json:"contact_phone" bson:"contact_phone"`
	Address        string             `json:"address" bson:"address"`
	SocialLinks    map[string]string  `json:"social_links" bson:"social_links"` // platform -> URL
	UpdatedBy      string             `json:"updated_by" bson:"updated_by"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpdateSiteSettingsRequest updates site content selectively
type UpdateSiteSettingsRequest struct {
	FoundationName *string           `json:"foundation_name,omitempty"`
	Tagline        *string           `json:"tagline,omitempty"`
	AboutText      *string           `json:"about_text,omitempty"`
	ContactEmail   *string           `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone   *string           `json:"contact_phone,omitempty"`
	Address        *string           `json:"address,omitempty"`
	SocialLinks    map[string]string `json:"social_links,omitempty"`
}
