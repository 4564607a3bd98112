package utils

import (
	"encoding/json"
	"net/http"

	"baf-backend/models"
)

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	if statusCode > 0 {
		w.WriteHeader(statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Encoding failed after the headers went out; nothing left to
			// do but attempt a bare error body
			if statusCode == http.StatusOK {
				w.Write([]byte(`{"error":"Internal Server Error","message":"JSON encoding failed"}`))
			}
		}
	}
}

// RespondError sends a JSON error response
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// RespondValidationErrors sends a 400 with a field -> message map so the
// frontend can render inline errors next to each input
func RespondValidationErrors(w http.ResponseWriter, fields map[string]string) {
	RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  http.StatusText(http.StatusBadRequest),
		"fields": fields,
	})
}

// RespondSuccess sends a JSON success response
func RespondSuccess(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
