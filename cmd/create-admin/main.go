// Command create-admin creates or promotes a back-office admin account.
//
// Usage:
//
//	go run ./cmd/create-admin -name "Site Admin" -email admin@example.org -password secret123
package main

import (
	"flag"
	"log"
	"strings"

	"baf-backend/config"
	"baf-backend/database"
	"baf-backend/models"
	"baf-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "password (min 6 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("❌ -email and -password are required")
	}
	if len(*password) < 6 {
		log.Fatal("❌ password must be at least 6 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer database.Close()

	userRepo := database.NewUserRepository(database.DB)

	normalizedEmail := strings.ToLower(strings.TrimSpace(*email))

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	existing, err := userRepo.FindByEmail(normalizedEmail)
	if err != nil {
		log.Fatalf("❌ Failed to look up user: %v", err)
	}

	if existing != nil {
		update := bson.M{
			"password": hashed,
			"admin":    1,
		}
		if *name != "" {
			update["name"] = *name
		}
		if err := userRepo.Update(existing.ID, update); err != nil {
			log.Fatalf("❌ Failed to update user: %v", err)
		}
		log.Printf("✓ Existing account promoted to admin: %s", normalizedEmail)
		return
	}

	user := &models.User{
		Name:     *name,
		Email:    normalizedEmail,
		Password: hashed,
		Admin:    1,
	}

	if err := userRepo.Create(user); err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}

	log.Printf("✓ Admin account created: %s (ID: %s)", user.Email, user.ID.Hex())
}
