package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CriticalAlert records a frontend-reported outage
type CriticalAlert struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AdminEmail       string             `json:"admin_email" bson:"admin_email"`
	ErrorType        string             `json:"error_type" bson:"error_type"`
	ErrorMessage     string             `json:"error_message" bson:"error_message"`
	EndpointFailed   string             `json:"endpoint_failed" bson:"endpoint_failed"`
	Timestamp        time.Time          `json:"timestamp" bson:"timestamp"`
	UserAgent        string             `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	NotificationSent bool               `json:"notification_sent" bson:"notification_sent"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}

// CriticalAlertRequest is the alert payload posted by the admin frontend
type CriticalAlertRequest struct {
	AdminEmail     string `json:"admin_email" validate:"required,email"`
	ErrorType      string `json:"error_type" validate:"required"`
	ErrorMessage   string `json:"error_message" validate:"required"`
	EndpointFailed string `json:"endpoint_failed" validate:"required"`
	Timestamp      string `json:"timestamp"`
	UserAgent      string `json:"user_agent"`
}
