package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration gate reasons returned by the program lookup
const (
	ReasonRegistrationEnded = "registration_ended"
	ReasonProgramFull       = "program_full"
	ReasonInactive          = "inactive"
)

// PaymentDetails holds the out-of-band payment channels of a program.
// No payment is processed by this system: participants transfer the fees
// manually and report a transaction reference.
type PaymentDetails struct {
	UPIID     string `json:"upi_id" bson:"upi_id"`
	QRCodeURL string `json:"qr_code_url" bson:"qr_code_url"`
}

// TrainingProgram represents one training program offered by the foundation
type TrainingProgram struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title               string             `json:"title" bson:"title"`
	Description         string             `json:"description" bson:"description"`
	Fees                int                `json:"fees" bson:"fees"` // whole rupees
	Duration            string             `json:"duration" bson:"duration"`
	Location            string             `json:"location" bson:"location"`
	StartDate           FlexibleDate       `json:"start_date" bson:"start_date"`
	EndDate             FlexibleDate       `json:"end_date" bson:"end_date"`
	RegistrationEndDate FlexibleDate       `json:"registration_end_date" bson:"registration_end_date"`
	MaxParticipants     int                `json:"max_participants" bson:"max_participants"`
	CurrentParticipants int                `json:"current_participants" bson:"current_participants"`
	PaymentDetails      PaymentDetails     `json:"payment_details" bson:"payment_details"`
	IsActive            bool               `json:"is_active" bson:"is_active"`
	Order               int                `json:"order" bson:"order"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}

// Eligibility answers whether the registration wizard may be entered
type Eligibility struct {
	RegistrationOpen bool   `json:"registration_open"`
	Reason           string `json:"reason,omitempty"`
	SeatsLeft        int    `json:"seats_left"`
}

// CheckEligibility evaluates the registration gate at a given instant.
// The deadline is inclusive: registration stays open through the end of
// the registration_end_date in Indian time.
func (p *TrainingProgram) CheckEligibility(now time.Time) Eligibility {
	seatsLeft := p.MaxParticipants - p.CurrentParticipants
	if seatsLeft < 0 {
		seatsLeft = 0
	}

	switch {
	case !p.IsActive:
		return Eligibility{RegistrationOpen: false, Reason: ReasonInactive, SeatsLeft: seatsLeft}
	case !p.RegistrationEndDate.IsZero() && now.After(p.RegistrationEndDate.EndOfDay()):
		return Eligibility{RegistrationOpen: false, Reason: ReasonRegistrationEnded, SeatsLeft: seatsLeft}
	case seatsLeft == 0:
		return Eligibility{RegistrationOpen: false, Reason: ReasonProgramFull, SeatsLeft: 0}
	}

	return Eligibility{RegistrationOpen: true, SeatsLeft: seatsLeft}
}

// CreateProgramRequest represents the admin program-creation payload
type CreateProgramRequest struct {
	Title               string       `json:"title" validate:"required,min=2"`
	Description         string       `json:"description" validate:"required"`
	Fees                int          `json:"fees" validate:"gte=0"`
	Duration            string       `json:"duration" validate:"required"`
	Location            string       `json:"location" validate:"required"`
	StartDate           FlexibleDate `json:"start_date"`
	EndDate             FlexibleDate `json:"end_date"`
	RegistrationEndDate FlexibleDate `json:"registration_end_date"`
	MaxParticipants     int          `json:"max_participants" validate:"required,gt=0"`
	UPIID               string       `json:"upi_id"`
	IsActive            *bool        `json:"is_active"`
	Order               int          `json:"order"`
}

// UpdateProgramRequest represents the admin program-update payload.
// Pointers distinguish "leave unchanged" from zero values.
type UpdateProgramRequest struct {
	Title               *string       `json:"title,omitempty"`
	Description         *string       `json:"description,omitempty"`
	Fees                *int          `json:"fees,omitempty"`
	Duration            *string       `json:"duration,omitempty"`
	Location            *string       `json:"location,omitempty"`
	StartDate           *FlexibleDate `json:"start_date,omitempty"`
	EndDate             *FlexibleDate `json:"end_date,omitempty"`
	RegistrationEndDate *FlexibleDate `json:"registration_end_date,omitempty"`
	MaxParticipants     *int          `json:"max_participants,omitempty"`
	UPIID               *string       `json:"upi_id,omitempty"`
	IsActive            *bool         `json:"is_active,omitempty"`
	Order               *int          `json:"order,omitempty"`
}
