package utils

import (
	"testing"
)

type mobileOnly struct {
	Mobile string `validate:"required,indianmobile"`
}

func TestIndianMobileRule(t *testing.T) {
	tests := []struct {
		mobile string
		valid  bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"8123456789", true},
		{"5876543210", false}, // must start with 6-9
		{"98765432", false},   // too short
		{"98765432101", false},
		{"98765abc10", false},
		{"+919876543210", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateStruct(&mobileOnly{Mobile: tt.mobile})
		if (err == nil) != tt.valid {
			t.Errorf("mobile %q: valid = %v, want %v", tt.mobile, err == nil, tt.valid)
		}
	}
}

type aadharOnly struct {
	AadharNumber string `validate:"required,aadhar"`
}

func TestAadharRule(t *testing.T) {
	tests := []struct {
		aadhar string
		valid  bool
	}{
		{"123456789012", true},
		{"12345678901", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateStruct(&aadharOnly{AadharNumber: tt.aadhar})
		if (err == nil) != tt.valid {
			t.Errorf("aadhar %q: valid = %v, want %v", tt.aadhar, err == nil, tt.valid)
		}
	}
}

type addressOnly struct {
	State   string `validate:"required,indianstate"`
	PinCode string `validate:"required,pincode"`
}

func TestStateAndPinCodeRules(t *testing.T) {
	tests := []struct {
		state   string
		pinCode string
		valid   bool
	}{
		{"Maharashtra", "400001", true},
		{"Tamil Nadu", "600001", true},
		{"Delhi", "110001", true},
		{"Atlantis", "400001", false},
		{"maharashtra", "400001", false}, // case sensitive, the form sends exact values
		{"Maharashtra", "4000", false},
		{"Maharashtra", "40000a", false},
	}
	for _, tt := range tests {
		err := ValidateStruct(&addressOnly{State: tt.state, PinCode: tt.pinCode})
		if (err == nil) != tt.valid {
			t.Errorf("state %q pin %q: valid = %v, want %v", tt.state, tt.pinCode, err == nil, tt.valid)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	type form struct {
		Mobile        string `validate:"required,indianmobile"`
		TransactionID string `validate:"required,min=10"`
	}

	err := ValidateStruct(&form{Mobile: "12345", TransactionID: "short"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	fields := FieldErrors(err)
	if fields == nil {
		t.Fatal("FieldErrors() returned nil")
	}

	if got := fields["mobile"]; got != "Invalid mobile number" {
		t.Errorf("fields[mobile] = %q, want 'Invalid mobile number'", got)
	}
	if _, ok := fields["transaction_id"]; !ok {
		t.Errorf("fields should contain transaction_id, got %v", fields)
	}
}

func TestFieldErrorsNonValidationError(t *testing.T) {
	if fields := FieldErrors(nil); fields != nil {
		t.Errorf("FieldErrors(nil) = %v, want nil", fields)
	}
}
