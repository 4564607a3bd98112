package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SlackService sends alert notifications to a Slack webhook
type SlackService struct {
	webhookURL string
	client     *http.Client
}

// SlackMessage is the webhook payload
type SlackMessage struct {
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a Slack message attachment
type Attachment struct {
	Color     string  `json:"color,omitempty"`
	Title     string  `json:"title,omitempty"`
	Text      string  `json:"text,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp int64   `json:"ts,omitempty"`
	Footer    string  `json:"footer,omitempty"`
}

// Field is a field inside a Slack attachment
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackService creates a new SlackService
func NewSlackService(webhookURL string) *SlackService {
	if webhookURL == "" {
		log.Println("⚠️  Slack webhook URL not configured - Slack alerts disabled")
	}

	return &SlackService{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SendErrorNotification posts an error alert to Slack
func (s *SlackService) SendErrorNotification(errorType, method, path, statusCode, message, origin, userAgent string) error {
	if s.webhookURL == "" {
		return nil // disabled
	}

	color := "danger"
	if statusCode == "403" {
		color = "warning"
	}

	slackMsg := SlackMessage{
		Attachments: []Attachment{
			{
				Color:     color,
				Title:     fmt.Sprintf("🚨 Server error: %s", errorType),
				Text:      message,
				Timestamp: time.Now().Unix(),
				Footer:    "Bharat Agro Foundation - Backend",
				Fields: []Field{
					{
						Title: "Method",
						Value: method,
						Short: true,
					},
					{
						Title: "Status Code",
						Value: statusCode,
						Short: true,
					},
					{
						Title: "Path",
						Value: path,
						Short: false,
					},
				},
			},
		},
	}

	if origin != "" {
		slackMsg.Attachments[0].Fields = append(slackMsg.Attachments[0].Fields, Field{
			Title: "Origin",
			Value: origin,
			Short: true,
		})
	}

	if userAgent != "" {
		slackMsg.Attachments[0].Fields = append(slackMsg.Attachments[0].Fields, Field{
			Title: "User-Agent",
			Value: userAgent,
			Short: false,
		})
	}

	jsonData, err := json.Marshal(slackMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequest("POST", s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build Slack request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to Slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack returned status %d", resp.StatusCode)
	}

	log.Printf("✓ Slack alert sent for: %s %s", method, path)
	return nil
}

// SendCriticalError posts a critical error alert
func (s *SlackService) SendCriticalError(method, path, statusCode, errorMessage, origin, userAgent string) {
	if err := s.SendErrorNotification(
		"Critical Error",
		method,
		path,
		statusCode,
		errorMessage,
		origin,
		userAgent,
	); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}

// SendCORSError posts an alert for a blocked origin
func (s *SlackService) SendCORSError(method, path, origin, userAgent string) {
	if err := s.SendErrorNotification(
		"CORS Error",
		method,
		path,
		"403",
		fmt.Sprintf("Origin not allowed: %s", origin),
		origin,
		userAgent,
	); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}
