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

// ProgramRepository handles operations on training programs
type ProgramRepository struct {
	collection *mongo.Collection
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{
		collection: db.Collection("trainingPrograms"),
	}
}

// Create inserts a new training program
func (r *ProgramRepository) Create(program *models.TrainingProgram) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	program.ID = primitive.NewObjectID()
	program.CreatedAt = time.Now()
	program.UpdatedAt = time.Now()
	program.CurrentParticipants = 0

	_, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}

	return nil
}

// FindActive returns the active programs in display order
func (r *ProgramRepository) FindActive() ([]models.TrainingProgram, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []models.TrainingProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, nil
}

// FindAll returns every program, active or not, in display order
func (r *ProgramRepository) FindAll() ([]models.TrainingProgram, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []models.TrainingProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, nil
}

// FindByID looks up one program
func (r *ProgramRepository) FindByID(id primitive.ObjectID) (*models.TrainingProgram, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var program models.TrainingProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)

	if err == mongo.ErrNoDocuments {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find program: %w", err)
	}

	return &program, nil
}

// Update applies a partial update to a program
func (r *ProgramRepository) Update(id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{BSONSet: update},
	)

	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}

	return nil
}

// Delete removes a program
func (r *ProgramRepository) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}

	return nil
}

// ReserveSeat atomically increments current_participants if a seat is
// still free. The capacity check lives inside the filter, so two
// concurrent registrations can never overbook the program.
// Returns false when the program is already full (or missing).
func (r *ProgramRepository) ReserveSeat(id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id": id,
		"$expr": bson.M{
			"$lt": bson.A{"$current_participants", "$max_participants"},
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		BSONInc: bson.M{"current_participants": 1},
		BSONSet: bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return false, fmt.Errorf("failed to reserve seat: %w", err)
	}

	return result.ModifiedCount == 1, nil
}

// ReleaseSeat decrements current_participants, never below zero.
// Used to roll back a reservation and when an admin deletes a registration.
func (r *ProgramRepository) ReleaseSeat(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":                  id,
		"current_participants": bson.M{"$gt": 0},
	}

	_, err := r.collection.UpdateOne(ctx, filter, bson.M{
		BSONInc: bson.M{"current_participants": -1},
		BSONSet: bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	return nil
}

// FindExpiredActive returns active programs whose registration deadline lies
// strictly before the cutoff. Deadlines are stored as midnight IST of their
// day and stay valid through that whole day, so callers must pass the start
// of the current IST day (models.StartOfDayIST), never the raw clock.
func (r *ProgramRepository) FindExpiredActive(cutoff time.Time) ([]models.TrainingProgram, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"is_active":             true,
		"registration_end_date": bson.M{"$lt": cutoff},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []models.TrainingProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode programs: %w", err)
	}

	return programs, nil
}

// CountAll counts every program
func (r *ProgramRepository) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count programs: %w", err)
	}

	return count, nil
}

// CountActive counts the currently active programs
func (r *ProgramRepository) CountActive() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count programs: %w", err)
	}

	return count, nil
}

// GetTotalParticipants sums current_participants across every program
func (r *ProgramRepository) GetTotalParticipants() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{BSONGroup: bson.M{
			"_id":   nil,
			"total": bson.M{BSONSum: "$current_participants"},
		}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate participants: %w", err)
	}
	defer cursor.Close(ctx)

	var result []bson.M
	if err = cursor.All(ctx, &result); err != nil {
		return 0, err
	}

	if len(result) == 0 {
		return 0, nil
	}

	return sumAsInt(result[0]["total"]), nil
}

// sumAsInt unwraps a $sum result, which Mongo widens to int64 (or double)
// once the total outgrows int32
func sumAsInt(v interface{}) int {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
