package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestConfirmationRedaction(t *testing.T) {
	reg := Registration{
		RegistrationID: "BAF123456ABCD",
		Name:           "Sunita Patil",
		Email:          "sunita@example.org",
		Mobile:         "9876543210",
		AadharNumber:   "123456789012",
		Documents: Documents{
			AadharFront:   "https://cdn.example.org/aadhar-front.jpg",
			AadharBack:    "https://cdn.example.org/aadhar-back.jpg",
			PassportPhoto: "https://cdn.example.org/photo.jpg",
		},
		Payment: Payment{
			TransactionID: "TXN1234567890",
			PaymentMethod: PaymentMethodUPI,
		},
		ProgramTitle:     "Organic Farming Basics",
		ProgramFees:      1500,
		Status:           StatusPending,
		RegistrationDate: time.Now(),
	}

	conf := reg.Confirmation()

	data, err := json.Marshal(conf)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)

	// The confirmation page is reachable by anyone holding the
	// registration ID, so the sensitive fields must not leak
	if strings.Contains(body, "123456789012") {
		t.Error("confirmation leaks the Aadhaar number")
	}
	if strings.Contains(body, "cdn.example.org") {
		t.Error("confirmation leaks document URLs")
	}
	if strings.Contains(body, "9876543210") {
		t.Error("confirmation leaks the mobile number")
	}

	if conf.RegistrationID != reg.RegistrationID {
		t.Errorf("RegistrationID = %q", conf.RegistrationID)
	}
	if conf.ProgramTitle != reg.ProgramTitle {
		t.Errorf("ProgramTitle = %q", conf.ProgramTitle)
	}
	if conf.TransactionID != reg.Payment.TransactionID {
		t.Errorf("TransactionID = %q", conf.TransactionID)
	}
	if conf.Status != StatusPending {
		t.Errorf("Status = %q", conf.Status)
	}
}
