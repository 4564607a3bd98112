package models

import (
	"encoding/json"
	"testing"
	"time"
)

func dateFrom(t *testing.T, s string) FlexibleDate {
	t.Helper()
	var fd FlexibleDate
	if err := json.Unmarshal([]byte(`"`+s+`"`), &fd); err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return fd
}

func TestCheckEligibilityOpen(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		CurrentParticipants: 10,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	e := p.CheckEligibility(now)

	if !e.RegistrationOpen {
		t.Errorf("RegistrationOpen = false, want true (reason %q)", e.Reason)
	}
	if e.SeatsLeft != 20 {
		t.Errorf("SeatsLeft = %d, want 20", e.SeatsLeft)
	}
	if e.Reason != "" {
		t.Errorf("Reason = %q, want empty", e.Reason)
	}
}

func TestCheckEligibilityInactive(t *testing.T) {
	p := TrainingProgram{
		IsActive:            false,
		MaxParticipants:     30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	e := p.CheckEligibility(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	if e.RegistrationOpen {
		t.Error("RegistrationOpen = true for inactive program")
	}
	if e.Reason != ReasonInactive {
		t.Errorf("Reason = %q, want %q", e.Reason, ReasonInactive)
	}
}

func TestCheckEligibilityDeadlinePassed(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	e := p.CheckEligibility(time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC))
	if e.RegistrationOpen {
		t.Error("RegistrationOpen = true after the deadline")
	}
	if e.Reason != ReasonRegistrationEnded {
		t.Errorf("Reason = %q, want %q", e.Reason, ReasonRegistrationEnded)
	}
}

// The deadline is inclusive: the evening of deadline day is still open
func TestCheckEligibilityDeadlineDayInclusive(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	// 20:00 IST on the deadline day
	loc := time.FixedZone("IST", 5*3600+1800)
	e := p.CheckEligibility(time.Date(2026, 6, 30, 20, 0, 0, 0, loc))
	if !e.RegistrationOpen {
		t.Errorf("RegistrationOpen = false on deadline day evening (reason %q)", e.Reason)
	}
}

// The expiry sweep must never deactivate a program the eligibility gate
// still reports open: a date-only deadline is stored as midnight of its
// day, so the sweep cutoff has to be the start of the current IST day,
// not the raw clock.
func TestSweepCutoffMatchesEligibility(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	loc := time.FixedZone("IST", 5*3600+1800)

	// Noon IST on the deadline day: still open, sweep must not match
	noon := time.Date(2026, 6, 30, 12, 0, 0, 0, loc)
	if !p.CheckEligibility(noon).RegistrationOpen {
		t.Fatal("RegistrationOpen = false at noon on deadline day")
	}
	if p.RegistrationEndDate.Time.Before(StartOfDayIST(noon)) {
		t.Errorf("deadline %v < sweep cutoff %v: sweep would deactivate an open program",
			p.RegistrationEndDate.Time, StartOfDayIST(noon))
	}

	// Early next day: closed, sweep must match
	nextDay := time.Date(2026, 7, 1, 0, 30, 0, 0, loc)
	if p.CheckEligibility(nextDay).RegistrationOpen {
		t.Fatal("RegistrationOpen = true the day after the deadline")
	}
	if !p.RegistrationEndDate.Time.Before(StartOfDayIST(nextDay)) {
		t.Errorf("deadline %v not < sweep cutoff %v: expired program would stay active",
			p.RegistrationEndDate.Time, StartOfDayIST(nextDay))
	}
}

func TestStartOfDayIST(t *testing.T) {
	// 23:00 UTC on June 29 is already 04:30 IST on June 30
	got := StartOfDayIST(time.Date(2026, 6, 29, 23, 0, 0, 0, time.UTC))
	loc := time.FixedZone("IST", 5*3600+1800)
	want := time.Date(2026, 6, 30, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDayIST = %v, want %v", got, want)
	}
}

func TestCheckEligibilityFull(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		CurrentParticipants: 30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	e := p.CheckEligibility(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	if e.RegistrationOpen {
		t.Error("RegistrationOpen = true for full program")
	}
	if e.Reason != ReasonProgramFull {
		t.Errorf("Reason = %q, want %q", e.Reason, ReasonProgramFull)
	}
	if e.SeatsLeft != 0 {
		t.Errorf("SeatsLeft = %d, want 0", e.SeatsLeft)
	}
}

// When a program is both past deadline and full, the deadline wins
func TestCheckEligibilityReasonPrecedence(t *testing.T) {
	p := TrainingProgram{
		IsActive:            true,
		MaxParticipants:     30,
		CurrentParticipants: 30,
		RegistrationEndDate: dateFrom(t, "2026-06-30"),
	}

	e := p.CheckEligibility(time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC))
	if e.Reason != ReasonRegistrationEnded {
		t.Errorf("Reason = %q, want %q", e.Reason, ReasonRegistrationEnded)
	}
}

func TestCheckEligibilityNoDeadline(t *testing.T) {
	p := TrainingProgram{
		IsActive:        true,
		MaxParticipants: 30,
	}

	e := p.CheckEligibility(time.Now())
	if !e.RegistrationOpen {
		t.Errorf("RegistrationOpen = false without deadline (reason %q)", e.Reason)
	}
}
