package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryImage represents one image in the public media gallery
type GalleryImage struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Category    string             `json:"category" bson:"category"` // "training", "field", "events", ...
	URL         string             `json:"url" bson:"url"`
	StoragePath string             `json:"storage_path" bson:"storage_path"`
	Filename    string             `json:"filename" bson:"filename"`
	Size        int64              `json:"size" bson:"size"`
	Order       int                `json:"order" bson:"order"`
	UploadedBy  string             `json:"uploaded_by" bson:"uploaded_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// UpdateGalleryImageRequest updates image metadata (the file itself is immutable)
type UpdateGalleryImageRequest struct {
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Order    *int    `json:"order,omitempty"`
}
