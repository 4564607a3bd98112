package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMService sends push notifications through Firebase Cloud Messaging
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates a new FCMService
func NewFCMService(credentialsFile string) (*FCMService, error) {
	ctx := context.Background()

	var app *firebase.App
	var err error

	// FIREBASE_CREDENTIALS_JSON takes priority (cloud deployments)
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")

	if credentialsJSON != "" {
		log.Println("📦 Using Firebase credentials from FIREBASE_CREDENTIALS_JSON")
		opt := option.WithCredentialsJSON([]byte(credentialsJSON))
		app, err = firebase.NewApp(ctx, nil, opt)
	} else {
		// Credentials file (local development)
		log.Printf("📦 Using Firebase credentials file: %s", credentialsFile)
		opt := option.WithCredentialsFile(credentialsFile)
		app, err = firebase.NewApp(ctx, nil, opt)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM client: %w", err)
	}

	log.Println("✓ Firebase Cloud Messaging initialized")

	return &FCMService{
		client: client,
	}, nil
}

// NewDisabledFCMService returns a no-op service, used when Firebase is not configured
func NewDisabledFCMService() *FCMService {
	return &FCMService{client: nil}
}

// Enabled reports whether push notifications are available
func (s *FCMService) Enabled() bool {
	return s.client != nil
}

// SendToToken sends a notification to a single token
func (s *FCMService) SendToToken(token string, title, body string, data map[string]string) error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Data-only messages so the service worker controls presentation
	if data == nil {
		data = make(map[string]string)
	}
	data["title"] = title
	data["message"] = body

	message := &messaging.Message{
		Token: token,
		Data:  data,
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{
				"Urgency": "high",
			},
		},
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	log.Printf("✓ Message sent: %s", response)
	return nil
}

// SendToMultipleTokens sends a notification to several tokens at once
func (s *FCMService) SendToMultipleTokens(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string, err error) {
	if s.client == nil || len(tokens) == 0 {
		return 0, 0, nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if data == nil {
		data = make(map[string]string)
	}
	data["title"] = title
	data["message"] = body

	message := &messaging.MulticastMessage{
		Data: data,
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{
				"Urgency": "high",
			},
		},
		Tokens: tokens,
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("multicast send failed: %w", err)
	}

	failedTokens = make([]string, 0)
	for idx, resp := range response.Responses {
		if !resp.Success {
			failedTokens = append(failedTokens, tokens[idx])
			log.Printf("❌ Failed token %s...: %v", shortToken(tokens[idx]), resp.Error)
		}
	}

	success = response.SuccessCount
	failed = response.FailureCount

	log.Printf("📊 Multicast: %d ok, %d failed out of %d", success, failed, len(tokens))

	return success, failed, failedTokens, nil
}

// SendToAll sends a notification to all tokens, batching per the FCM limit
func (s *FCMService) SendToAll(tokens []string, title, body string, data map[string]string) (success int, failed int, failedTokens []string) {
	// FCM caps multicast requests at 500 tokens
	const batchSize = 500

	totalSuccess := 0
	totalFailed := 0
	allFailedTokens := make([]string, 0)

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		batch := tokens[i:end]
		s, f, ft, err := s.SendToMultipleTokens(batch, title, body, data)

		if err != nil {
			log.Printf("❌ Batch %d failed: %v", i/batchSize+1, err)
			totalFailed += len(batch)
			continue
		}

		totalSuccess += s
		totalFailed += f
		allFailedTokens = append(allFailedTokens, ft...)
	}

	return totalSuccess, totalFailed, allFailedTokens
}

func shortToken(token string) string {
	if len(token) > 20 {
		return token[:20]
	}
	return token
}
