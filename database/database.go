package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB is the MongoDB database handle
var DB *mongo.Database
var Client *mongo.Client

// Connect establishes the MongoDB connection
func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	Client = client
	DB = client.Database(dbName)

	log.Println("✓ Connected to MongoDB")

	if err = createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// Ping checks that the MongoDB connection is alive
func Ping() error {
	if Client == nil {
		return fmt.Errorf("MongoDB client not initialized")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Client.Ping(ctx, nil)
}

// Close disconnects from the database
func Close() error {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return Client.Disconnect(ctx)
	}
	return nil
}

// createIndexes creates the indexes the application relies on
func createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Unique email per back-office account
	_, err := DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	// Unique human-readable registration identifier; the generator is
	// timestamp+random so the index is the actual uniqueness guarantee
	_, err = DB.Collection("registrations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "registration_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create registration_id index: %w", err)
	}

	// Admin list is served newest-first and filtered by program
	_, err = DB.Collection("registrations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "program_id", Value: 1}, {Key: "registration_date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create registrations program index: %w", err)
	}

	// One row per device token
	_, err = DB.Collection("fcm_tokens").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create fcm_tokens index: %w", err)
	}

	log.Println("✓ MongoDB indexes created")
	return nil
}
