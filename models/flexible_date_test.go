package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlexibleDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain date", `"2026-06-30"`, false},
		{"ISO timestamp", `"2026-06-30T18:00:00"`, false},
		{"short timestamp", `"2026-06-30T18:00"`, false},
		{"RFC3339", `"2026-06-30T18:00:00Z"`, false},
		{"null", `null`, false},
		{"empty", `""`, false},
		{"invalid", `"30/06/2026"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fd FlexibleDate
			err := json.Unmarshal([]byte(tt.input), &fd)
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFlexibleDate_MarshalJSON(t *testing.T) {
	var fd FlexibleDate
	if err := json.Unmarshal([]byte(`"2026-06-30"`), &fd); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}

	data, err := json.Marshal(fd)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2026-06-30"` {
		t.Errorf("MarshalJSON() = %s, want \"2026-06-30\"", data)
	}
}

func TestFlexibleDate_MarshalJSONZero(t *testing.T) {
	var fd FlexibleDate
	data, err := json.Marshal(fd)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != "null" {
		t.Errorf("MarshalJSON() of zero date = %s, want null", data)
	}
}

func TestFlexibleDate_EndOfDay(t *testing.T) {
	var fd FlexibleDate
	if err := json.Unmarshal([]byte(`"2026-06-30"`), &fd); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}

	end := fd.EndOfDay()

	// A submission at 18:00 on deadline day is still inside the window
	sameDay := fd.Time.Add(18 * time.Hour)
	if sameDay.After(end) {
		t.Errorf("18:00 on deadline day should not be after EndOfDay (%v)", end)
	}

	// The next morning is outside
	nextMorning := fd.Time.Add(25 * time.Hour)
	if !nextMorning.After(end) {
		t.Errorf("next morning should be after EndOfDay (%v)", end)
	}
}
