package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a back-office account
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // "-" keeps the hash out of responses
	Admin     int                `json:"admin" bson:"admin"` // 0 = staff, 1 = admin
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest represents the admin user-update payload
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Admin *int   `json:"admin,omitempty"` // pointer distinguishes 0 from absent
}

// AuthResponse represents the login response
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse represents a generic success response body
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AdminStatsResponse represents the global back-office statistics
type AdminStatsResponse struct {
	TotalUsers            int `json:"total_users"`
	TotalAdmins           int `json:"total_admins"`
	TotalPrograms         int `json:"total_programs"`
	ActivePrograms        int `json:"active_programs"`
	TotalRegistrations    int `json:"total_registrations"`
	PendingRegistrations  int `json:"pending_registrations"`
	ApprovedRegistrations int `json:"approved_registrations"`
	RejectedRegistrations int `json:"rejected_registrations"`
	TotalParticipants     int `json:"total_participants"`
	GalleryImages         int `json:"gallery_images"`
	TeamMembers           int `json:"team_members"`
	UnreadMessages        int `json:"unread_messages"`
}
