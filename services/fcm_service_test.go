package services

import (
	"testing"
)

func TestDisabledFCMService(t *testing.T) {
	svc := NewDisabledFCMService()
	if svc == nil {
		t.Fatal("NewDisabledFCMService() must not return nil")
	}
	if svc.Enabled() {
		t.Error("disabled service reports Enabled() = true")
	}
	// SendToAll on a disabled service must not panic
	success, failed, _ := svc.SendToAll([]string{"tok"}, "t", "b", nil)
	if success != 0 || failed != 0 {
		t.Errorf("SendToAll on disabled service: success=%d, failed=%d", success, failed)
	}
	if err := svc.SendToToken("tok", "t", "b", nil); err != nil {
		t.Errorf("SendToToken on disabled service: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aadhar front.jpg", "aadhar_front"},
		{"../../etc/passwd", "passwd"},
		{"photo.PNG", "photo"},
		{"", "file"},
		{"résumé.png", "r_sum_"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
