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

// FCMTokenRepository stores device tokens used for admin push notifications
type FCMTokenRepository struct {
	collection *mongo.Collection
}

// NewFCMTokenRepository creates a new FCMTokenRepository
func NewFCMTokenRepository(db *mongo.Database) *FCMTokenRepository {
	return &FCMTokenRepository{
		collection: db.Collection("fcm_tokens"),
	}
}

// Upsert saves a token, refreshing its metadata if it already exists
func (r *FCMTokenRepository) Upsert(token *models.FCMToken) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		BSONSet: bson.M{
			"user_email": token.UserEmail,
			"device":     token.Device,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"token":      token.Token,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"token": token.Token}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save fcm token: %w", err)
	}

	return nil
}

// FindAll returns every registered token
func (r *FCMTokenRepository) FindAll() ([]models.FCMToken, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find fcm tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var tokens []models.FCMToken
	if err = cursor.All(ctx, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode fcm tokens: %w", err)
	}

	return tokens, nil
}

// FindByUserEmail returns the tokens registered by one admin
func (r *FCMTokenRepository) FindByUserEmail(email string) ([]models.FCMToken, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"user_email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find fcm tokens: %w", err)
	}
	defer cursor.Close(ctx)

	var tokens []models.FCMToken
	if err = cursor.All(ctx, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode fcm tokens: %w", err)
	}

	return tokens, nil
}

// DeleteByToken removes a token, typically after FCM reports it invalid
func (r *FCMTokenRepository) DeleteByToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return fmt.Errorf("failed to delete fcm token: %w", err)
	}

	return nil
}
