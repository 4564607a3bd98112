package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment methods accepted by the wizard
const (
	PaymentMethodUPI    = "upi"
	PaymentMethodQRCode = "qr_code"
)

// Address is the postal address captured in step 1 of the wizard
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	PinCode string `json:"pin_code" bson:"pin_code"`
}

// Documents holds the storage URLs of the three uploaded identity images
type Documents struct {
	AadharFront   string `json:"aadhar_front" bson:"aadhar_front"`
	AadharBack    string `json:"aadhar_back" bson:"aadhar_back"`
	PassportPhoto string `json:"passport_photo" bson:"passport_photo"`
}

// Payment records the out-of-band transfer reported in step 2
type Payment struct {
	TransactionID string    `json:"transaction_id" bson:"transaction_id"`
	Amount        int       `json:"amount" bson:"amount"`
	PaymentMethod string    `json:"payment_method" bson:"payment_method"` // "upi" or "qr_code"
	PaymentDate   time.Time `json:"payment_date" bson:"payment_date"`
}

// Registration represents one person's enrollment in one training program
type Registration struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RegistrationID          string             `json:"registration_id" bson:"registration_id"`
	Name                    string             `json:"name" bson:"name"`
	Email                   string             `json:"email" bson:"email"`
	Mobile                  string             `json:"mobile" bson:"mobile"`
	FatherMotherHusbandName string             `json:"father_mother_husband_name" bson:"father_mother_husband_name"`
	AadharNumber            string             `json:"aadhar_number" bson:"aadhar_number"`
	DateOfBirth             string             `json:"date_of_birth" bson:"date_of_birth"`
	Address                 Address            `json:"address" bson:"address"`
	Documents               Documents          `json:"documents" bson:"documents"`
	Payment                 Payment            `json:"payment" bson:"payment"`
	ProgramID               primitive.ObjectID `json:"program_id" bson:"program_id"`
	ProgramTitle            string             `json:"program_title" bson:"program_title"` // denormalized at submission time
	ProgramFees             int                `json:"program_fees" bson:"program_fees"`   // denormalized at submission time
	Status                  string             `json:"status" bson:"status"`
	AdminNotes              string             `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	ApprovedBy              string             `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt              *time.Time         `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	RegistrationDate        time.Time          `json:"registration_date" bson:"registration_date"`
	LastUpdated             time.Time          `json:"last_updated" bson:"last_updated"`
}

// RegistrationRequest carries the non-file fields of the wizard submission.
// The three document images arrive as multipart files next to these fields.
type RegistrationRequest struct {
	Name                    string `json:"name" validate:"required,min=2"`
	Email                   string `json:"email" validate:"required,email"`
	Mobile                  string `json:"mobile" validate:"required,indianmobile"`
	FatherMotherHusbandName string `json:"father_mother_husband_name" validate:"required,min=2"`
	AadharNumber            string `json:"aadhar_number" validate:"required,aadhar"`
	DateOfBirth             string `json:"date_of_birth" validate:"required"`
	Street                  string `json:"street" validate:"required,min=5"`
	City                    string `json:"city" validate:"required,min=2"`
	State                   string `json:"state" validate:"required,indianstate"`
	PinCode                 string `json:"pin_code" validate:"required,pincode"`
	PaymentMethod           string `json:"payment_method" validate:"required,oneof=upi qr_code"`
	TransactionID           string `json:"transaction_id" validate:"required,min=10"`
}

// UpdateRegistrationStatusRequest is the admin review action payload
type UpdateRegistrationStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending approved rejected"`
	AdminNotes string `json:"admin_notes"`
}

// RegistrationConfirmation is the redacted public view served to the
// standalone confirmation page. Aadhaar number and document URLs are
// deliberately not exposed.
type RegistrationConfirmation struct {
	RegistrationID   string    `json:"registration_id"`
	Name             string    `json:"name"`
	ProgramTitle     string    `json:"program_title"`
	ProgramFees      int       `json:"program_fees"`
	PaymentMethod    string    `json:"payment_method"`
	TransactionID    string    `json:"transaction_id"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Confirmation builds the public confirmation view from a stored record
func (r *Registration) Confirmation() RegistrationConfirmation {
	return RegistrationConfirmation{
		RegistrationID:   r.RegistrationID,
		Name:             r.Name,
		ProgramTitle:     r.ProgramTitle,
		ProgramFees:      r.ProgramFees,
		PaymentMethod:    r.Payment.PaymentMethod,
		TransactionID:    r.Payment.TransactionID,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
	}
}
