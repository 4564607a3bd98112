package database

import (
	"context"
	"fmt"
	"time"

	"baf-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryRepository handles operations on gallery images
type GalleryRepository struct {
	collection *mongo.Collection
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{
		collection: db.Collection("galleryImages"),
	}
}

// Create inserts an image record after a successful upload
func (r *GalleryRepository) Create(image *models.GalleryImage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	image.ID = primitive.NewObjectID()
	image.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}

	return nil
}

// Find returns images, optionally restricted to one category, in display order
func (r *GalleryRepository) Find(category string) ([]models.GalleryImage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find gallery images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []models.GalleryImage
	if err = cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode gallery images: %w", err)
	}

	return images, nil
}

// FindByID looks up one image
func (r *GalleryRepository) FindByID(id primitive.ObjectID) (*models.GalleryImage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var image models.GalleryImage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&image)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find gallery image: %w", err)
	}

	return &image, nil
}

// Update applies a partial metadata update
func (r *GalleryRepository) Update(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{BSONSet: update})
	if err != nil {
		return fmt.Errorf("failed to update gallery image: %w", err)
	}

	return nil
}

// Delete removes an image record
func (r *GalleryRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	return nil
}

// CountAll counts the gallery images
func (r *GalleryRepository) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count gallery images: %w", err)
	}

	return count, nil
}
