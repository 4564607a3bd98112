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

// ContactRepository handles operations on contact messages
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: db.Collection("contactMessages"),
	}
}

// Create inserts a new contact message
func (r *ContactRepository) Create(message *models.ContactMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	message.ID = primitive.NewObjectID()
	message.Read = false
	message.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// FindAll returns every contact message, newest first
func (r *ContactRepository) FindAll() ([]models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.ContactMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}

	return messages, nil
}

// FindByID looks up one message
func (r *ContactRepository) FindByID(id primitive.ObjectID) (*models.ContactMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var message models.ContactMessage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find contact message: %w", err)
	}

	return &message, nil
}

// MarkRead flags a message as read
func (r *ContactRepository) MarkRead(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{BSONSet: bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}

	return nil
}

// Delete removes a message
func (r *ContactRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	return nil
}

// CountUnread counts the unread messages
func (r *ContactRepository) CountUnread() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}
