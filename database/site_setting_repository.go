package database

import (
	"context"
	"fmt"
	"time"

	"baf-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SiteSettingsRepository manages the single site-wide settings document
type SiteSettingsRepository struct {
	collection *mongo.Collection
}

// NewSiteSettingsRepository creates a new SiteSettingsRepository
func NewSiteSettingsRepository(db *mongo.Database) *SiteSettingsRepository {
	return &SiteSettingsRepository{
		collection: db.Collection("siteSettings"),
	}
}

// Get returns the settings document, or nil when none has been saved yet
func (r *SiteSettingsRepository) Get() (*models.SiteSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var settings models.SiteSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load site settings: %w", err)
	}

	return &settings, nil
}

// Upsert applies a partial update, creating the document on first save
func (r *SiteSettingsRepository) Upsert(update bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{}, bson.M{BSONSet: update}, opts)
	if err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}

	return nil
}
