package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandlerHealth(t *testing.T) {
	handler := NewHealthHandler("test")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()

	handler.Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Health() status = %v, want %v", rr.Code, http.StatusOK)
	}

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Health() Content-Type = %v, want application/json", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Health() body is not valid JSON: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf(`body["status"] = %v, want "ok"`, body["status"])
	}
	if body["message"] != "Server is running" {
		t.Errorf(`body["message"] = %v, want "Server is running"`, body["message"])
	}
	if body["env"] != "test" {
		t.Errorf(`body["env"] = %v, want "test"`, body["env"])
	}

	// No Mongo connection in tests, so the ping must degrade rather than fail
	if body["db_status"] != "error" {
		t.Errorf(`body["db_status"] = %v, want "error" without a database`, body["db_status"])
	}

	for _, key := range []string{"uptime", "go_version", "database"} {
		if _, ok := body[key]; !ok {
			t.Errorf("Health() body missing %q", key)
		}
	}
}
