package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, http.StatusBadRequest, "Invalid field")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Code = %v, want %v", rr.Code, http.StatusBadRequest)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %v", ct)
	}
	if !strings.Contains(rr.Body.String(), "Bad Request") {
		t.Errorf("Body should contain 'Bad Request', got %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Invalid field") {
		t.Errorf("Body should contain 'Invalid field', got %s", rr.Body.String())
	}
}

func TestRespondSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondSuccess(rr, "Done", map[string]string{"id": "123"})

	if rr.Code != http.StatusOK {
		t.Errorf("Code = %v, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Done") {
		t.Errorf("Body should contain 'Done', got %s", body)
	}
	if !strings.Contains(body, "true") {
		t.Errorf("Body should contain success true, got %s", body)
	}
}

func TestRespondValidationErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondValidationErrors(rr, map[string]string{"mobile": "Invalid mobile number"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Code = %v, want 400", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"fields"`) {
		t.Errorf("Body should contain the fields map, got %s", body)
	}
	if !strings.Contains(body, "Invalid mobile number") {
		t.Errorf("Body should contain the field message, got %s", body)
	}
}
