package model

import (
	"testing"
	"time"
)

func sampleBooking() Booking {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return Booking{
		ID:               "b-1",
		PatientName:      "Alice Wong",
		SurgeryType:      "Appendectomy",
		DoctorName:       "Dr. Zhang",
		AssistantDoctors: []string{"Dr. Li"},
		OperatingRoom:    "OR-1",
		StartTime:        start,
		EndTime:          start.Add(2 * time.Hour),
		Status:           StatusScheduled,
		Urgency:          UrgencyElective,
	}
}

func TestBooking_CloneIsIndependent(t *testing.T) {
	original := sampleBooking()
	clone := original.Clone()

	clone.AssistantDoctors[0] = "Dr. Chen"
	clone.PatientName = "someone else"

	if original.AssistantDoctors[0] != "Dr. Li" {
		t.Errorf("mutating a clone's assistant doctors leaked into the original")
	}
	if original.PatientName != "Alice Wong" {
		t.Errorf("mutating a clone's scalar field leaked into the original")
	}
}

func TestBookingPatch_ApplyPreservesID(t *testing.T) {
	existing := sampleBooking()
	room := "OR-3"
	status := StatusInProgress

	merged := BookingPatch{OperatingRoom: &room, Status: &status}.Apply(existing)

	if merged.ID != existing.ID {
		t.Errorf("patch must never change the id: got %q, want %q", merged.ID, existing.ID)
	}
	if merged.OperatingRoom != "OR-3" {
		t.Errorf("expected operating room OR-3, got %q", merged.OperatingRoom)
	}
	if merged.Status != StatusInProgress {
		t.Errorf("expected status in-progress, got %q", merged.Status)
	}
	if merged.PatientName != existing.PatientName {
		t.Errorf("unpatched fields must carry over unchanged")
	}
}

func TestBookingPatch_ApplyLeavesNilFieldsUntouched(t *testing.T) {
	existing := sampleBooking()

	merged := BookingPatch{}.Apply(existing)

	if merged.StartTime != existing.StartTime || merged.EndTime != existing.EndTime {
		t.Errorf("empty patch changed the time window")
	}
	if len(merged.AssistantDoctors) != 1 || merged.AssistantDoctors[0] != "Dr. Li" {
		t.Errorf("empty patch changed the assistant doctors")
	}
}

func TestToCalendarEvent(t *testing.T) {
	b := sampleBooking()
	event := ToCalendarEvent(b)

	if event.ID != b.ID {
		t.Errorf("expected event id %q, got %q", b.ID, event.ID)
	}
	if event.Title != "Alice Wong - Appendectomy" {
		t.Errorf("unexpected title %q", event.Title)
	}
	if event.BackgroundColor != StatusColor(StatusScheduled) {
		t.Errorf("event color should follow booking status")
	}
	if event.BackgroundColor != event.BorderColor {
		t.Errorf("background and border colors should match")
	}

	event.Booking.AssistantDoctors[0] = "mutated"
	if b.AssistantDoctors[0] != "Dr. Li" {
		t.Errorf("event must carry a copy of the booking, not a live reference")
	}
}

func TestStatusLabel_UnknownFallsBack(t *testing.T) {
	if got := StatusLabel(Status("weird")); got != "weird" {
		t.Errorf("unknown status should fall back to its raw value, got %q", got)
	}
}
