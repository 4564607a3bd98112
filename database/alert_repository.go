package database

import (
	"context"
	"fmt"
	"time"

	"baf-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AlertRepository stores frontend-reported critical alerts
type AlertRepository struct {
	collection *mongo.Collection
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{
		collection: db.Collection("criticalAlerts"),
	}
}

// Create inserts a new alert
func (r *AlertRepository) Create(alert *models.CriticalAlert) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

// CountRecentAlerts counts alerts from one admin within the last N minutes.
// Used for rate limiting.
func (r *AlertRepository) CountRecentAlerts(adminEmail string, withinMinutes int) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	since := time.Now().Add(-time.Duration(withinMinutes) * time.Minute)

	count, err := r.collection.CountDocuments(ctx, bson.M{
		"admin_email": adminEmail,
		"created_at":  bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	return count, nil
}
