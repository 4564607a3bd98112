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

// TeamRepository handles operations on team members
type TeamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{
		collection: db.Collection("teamMembers"),
	}
}

// Create inserts a new team member
func (r *TeamRepository) Create(member *models.TeamMember) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	member.ID = primitive.NewObjectID()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt

	_, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}

	return nil
}

// FindAll returns every team member in display order
func (r *TeamRepository) FindAll() ([]models.TeamMember, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find team members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}

	return members, nil
}

// FindByID looks up one team member
func (r *TeamRepository) FindByID(id primitive.ObjectID) (*models.TeamMember, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var member models.TeamMember
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}

	return &member, nil
}

// Update applies a partial update to a team member
func (r *TeamRepository) Update(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{BSONSet: update})
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	return nil
}

// Delete removes a team member
func (r *TeamRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	return nil
}

// CountAll counts the team members
func (r *TeamRepository) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}

	return count, nil
}
