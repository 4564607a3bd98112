package utils

import (
	"testing"
)

func TestGenerateToken(t *testing.T) {
	secret := "test-secret-key"
	userID := "user123"
	email := "test@example.com"

	token, err := GenerateToken(userID, email, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateToken() must not return an empty string")
	}
}

func TestValidateToken(t *testing.T) {
	secret := "test-secret-key"
	userID := "user456"
	email := "valid@example.com"

	token, err := GenerateToken(userID, email, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Email = %v, want %v", claims.Email, email)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("u", "e@e.com", "secret1")
	_, err := ValidateToken(token, "secret2")
	if err == nil {
		t.Error("ValidateToken() should fail with the wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("invalid-token", "secret")
	if err == nil {
		t.Error("ValidateToken() should fail with a malformed token")
	}
}
