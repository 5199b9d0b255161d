package validator

import (
	"strings"
	"testing"
	"time"

	"orsched/pkg/logger"
	"orsched/pkg/model"
)

func validBooking() model.Booking {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return model.Booking{
		PatientName:   "Alice Wong",
		SurgeryType:   "Appendectomy",
		DoctorName:    "Dr. Zhang",
		OperatingRoom: "OR-1",
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		Status:        model.StatusScheduled,
		Urgency:       model.UrgencyElective,
	}
}

func TestValidate_AcceptsValidBooking(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	b := validBooking()

	if err := v.Validate(&b); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Booking)
		field  string
	}{
		{"missing patient name", func(b *model.Booking) { b.PatientName = "" }, "PatientName"},
		{"missing surgery type", func(b *model.Booking) { b.SurgeryType = "" }, "SurgeryType"},
		{"missing doctor name", func(b *model.Booking) { b.DoctorName = "" }, "DoctorName"},
		{"missing operating room", func(b *model.Booking) { b.OperatingRoom = "" }, "OperatingRoom"},
	}

	v := NewBookingValidator(logger.Discard())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(&b)

			err := v.Validate(&b)
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to name field %s, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_EndMustBeAfterStart(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	b := validBooking()
	b.EndTime = b.StartTime
	if err := v.Validate(&b); err == nil {
		t.Errorf("end == start must fail validation")
	}

	b = validBooking()
	b.EndTime = b.StartTime.Add(-time.Hour)
	if err := v.Validate(&b); err == nil {
		t.Errorf("end < start must fail validation")
	}
}

func TestValidate_RejectsUnknownStatusAndUrgency(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	b := validBooking()
	b.Status = model.Status("postponed")
	if err := v.Validate(&b); err == nil {
		t.Errorf("unknown status must fail validation")
	}

	b = validBooking()
	b.Urgency = model.Urgency("asap")
	if err := v.Validate(&b); err == nil {
		t.Errorf("unknown urgency must fail validation")
	}
}

func TestValidate_UrgencyMayBeAbsent(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	b := validBooking()
	b.Urgency = ""
	if err := v.Validate(&b); err != nil {
		t.Errorf("absent urgency should be allowed (defaulted on load), got: %v", err)
	}
}

func TestValidatePatch_CrossFieldTimes(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	patch := model.BookingPatch{StartTime: &start, EndTime: &end}
	if err := v.ValidatePatch(&patch); err == nil {
		t.Errorf("patch with end before start must fail validation")
	}

	// A single-bound patch is fine on its own; the merged record gets the
	// full check later.
	patch = model.BookingPatch{EndTime: &end}
	if err := v.ValidatePatch(&patch); err != nil {
		t.Errorf("single-bound patch should pass in isolation, got: %v", err)
	}
}

func TestValidationErrors_MessageFormat(t *testing.T) {
	errs := ValidationErrors{
		{Field: "PatientName", Message: "PatientName is required"},
		{Field: "EndTime", Message: "end_time must be after start_time"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 error(s)") {
		t.Errorf("expected error count in message, got: %s", msg)
	}
	if !strings.Contains(msg, "PatientName") || !strings.Contains(msg, "EndTime") {
		t.Errorf("expected both field names in message, got: %s", msg)
	}
}
