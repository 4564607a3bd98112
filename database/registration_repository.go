package database

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"baf-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RegistrationRepository handles operations on program registrations
type RegistrationRepository struct {
	collection *mongo.Collection
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{
		collection: db.Collection("registrations"),
	}
}

// Create inserts a new registration with status pending
func (r *RegistrationRepository) Create(registration *models.Registration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	registration.ID = primitive.NewObjectID()
	registration.Status = models.StatusPending
	registration.RegistrationDate = time.Now()
	registration.LastUpdated = registration.RegistrationDate

	_, err := r.collection.InsertOne(ctx, registration)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("registration ID collision, please retry")
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// FindByRegistrationID looks up a registration by its human-readable ID
func (r *RegistrationRepository) FindByRegistrationID(registrationID string) (*models.Registration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var registration models.Registration
	err := r.collection.FindOne(ctx, bson.M{"registration_id": registrationID}).Decode(&registration)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}

	return &registration, nil
}

// FindByID looks up a registration by document ID
func (r *RegistrationRepository) FindByID(id primitive.ObjectID) (*models.Registration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var registration models.Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&registration)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}

	return &registration, nil
}

// Filter restricts the admin registration listing
type Filter struct {
	Status string // "", "pending", "approved" or "rejected"
	Search string // free text across name/email/mobile/registration_id/program_title
}

// query builds the Mongo filter document
func (f Filter) query() bson.M {
	filter := bson.M{}

	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		or := make([]bson.M, 0, 5)
		for _, field := range []string{"name", "email", "mobile", "registration_id", "program_title"} {
			or = append(or, bson.M{field: bson.M{BSONRegex: pattern, BSONOptions: "i"}})
		}
		filter[BSONOr] = or
	}

	return filter
}

// Find returns the registrations matching a filter, newest first
func (r *RegistrationRepository) Find(f Filter) ([]models.Registration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "registration_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []models.Registration
	if err = cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("failed to decode registrations: %w", err)
	}

	return registrations, nil
}

// UpdateStatus applies a review decision to a registration.
// The caller decides which fields to set; last_updated is always touched.
func (r *RegistrationRepository) UpdateStatus(id primitive.ObjectID, set bson.M, unset bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set["last_updated"] = time.Now()

	update := bson.M{BSONSet: set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	return nil
}

// DeleteByID removes a registration
func (r *RegistrationRepository) DeleteByID(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	return nil
}

// CountAll counts every registration
func (r *RegistrationRepository) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

// CountByStatus counts registrations in a given status
func (r *RegistrationRepository) CountByStatus(status string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}
