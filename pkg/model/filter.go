package model

import (
	"time"
)

// FilterCriteria is an optional-field predicate over bookings. All present
// fields are ANDed together. The date range is matched against a booking's
// start time only, not against full interval overlap.
type FilterCriteria struct {
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Keyword       string     `json:"keyword,omitempty"`
	Urgency       Urgency    `json:"urgency,omitempty"`
	DoctorName    string     `json:"doctor_name,omitempty"`
	OperatingRoom string     `json:"operating_room,omitempty"`
	Status        []Status   `json:"status,omitempty"`
	SurgeryType   string     `json:"surgery_type,omitempty"`
}

// IsZero reports whether no criteria fields are set.
func (c FilterCriteria) IsZero() bool {
	return c.StartDate == nil &&
		c.EndDate == nil &&
		c.Keyword == "" &&
		c.Urgency == "" &&
		c.DoctorName == "" &&
		c.OperatingRoom == "" &&
		len(c.Status) == 0 &&
		c.SurgeryType == ""
}

// ConflictResult is the outcome of a room-time conflict check. It is a query
// result, not an error: a conflict is an expected, common outcome.
type ConflictResult struct {
	HasConflict          bool      `json:"has_conflict"`
	ConflictingSchedules []Booking `json:"conflicting_schedules"`
	Message              string    `json:"message,omitempty"`
}
