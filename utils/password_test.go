package utils

import (
	"strings"
	"testing"
)

const adminPassword = "baf-admin-2026!"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == adminPassword {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, not a bcrypt hash", hash)
	}

	// Each call salts independently
	again, err := HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == again {
		t.Error("HashPassword() produced the same hash twice, salt missing")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword(hash, adminPassword) {
		t.Error("CheckPassword() = false for the correct password")
	}
	if CheckPassword(hash, "baf-admin-2026") {
		t.Error("CheckPassword() = true for a near-miss password")
	}
	if CheckPassword(hash, "") {
		t.Error("CheckPassword() = true for an empty password")
	}
	if CheckPassword("not-a-bcrypt-hash", adminPassword) {
		t.Error("CheckPassword() = true against a malformed hash")
	}
}
