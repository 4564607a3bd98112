package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the application
type Config struct {
	Port                    string
	Host                    string
	MongoURI                string
	MongoDB                 string
	JWTSecret               string
	Environment             string
	CORSOrigins             []string
	CloudinaryURL           string
	CloudinaryFolder        string
	FirebaseCredentialsFile string
	FCMVAPIDKey             string
	SlackWebhookURL         string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load the .env file if present
	_ = godotenv.Load()

	config := &Config{
		Port:                    getEnv("PORT", "8090"),
		Host:                    getEnv("HOST", "0.0.0.0"), // 0.0.0.0 for cloud hosting
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                 getEnv("MONGO_DB", "baf_foundation_db"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		Environment:             getEnv("ENVIRONMENT", "development"),
		CloudinaryURL:           getEnv("CLOUDINARY_URL", ""),
		CloudinaryFolder:        getEnv("CLOUDINARY_FOLDER", "baf"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "firebase-service-account.json"),
		FCMVAPIDKey:             getEnv("FCM_VAPID_KEY", ""),
		SlackWebhookURL:         getEnv("SLACK_WEBHOOK_URL", ""),
	}

	// Parse the CORS origins
	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	originsList := strings.Split(origins, ",")
	config.CORSOrigins = make([]string, 0, len(originsList))
	for _, origin := range originsList {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			config.CORSOrigins = append(config.CORSOrigins, trimmed)
		}
	}

	// Validate the critical settings
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Cloudinary and Firebase are optional: uploads and push notifications
	// degrade gracefully when they are not configured

	return config, nil
}

// getEnv reads an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
