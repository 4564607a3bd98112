package utils

import (
	"regexp"
	"testing"
	"time"
)

var regIDPattern = regexp.MustCompile(`^BAF\d{6}[A-Z0-9]{4}$`)

func TestGenerateRegistrationIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := GenerateRegistrationID()
		if !regIDPattern.MatchString(id) {
			t.Fatalf("GenerateRegistrationID() = %q, does not match %s", id, regIDPattern)
		}
	}
}

func TestGenerateRegistrationIDAtTimestamp(t *testing.T) {
	now := time.UnixMilli(1718000123456)
	id := GenerateRegistrationIDAt(now)

	// Millis suffix 123456 must appear right after the prefix
	if got := id[3:9]; got != "123456" {
		t.Errorf("timestamp part = %q, want 123456 (id %q)", got, id)
	}
}
