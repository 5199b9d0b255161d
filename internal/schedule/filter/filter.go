// Package filter evaluates multi-criteria booking queries.
package filter

import (
	"strings"

	"orsched/pkg/model"
	"orsched/pkg/sanitizer"
)

// Apply returns the bookings matching every set field of the criteria, in the
// input order. An empty criteria returns the input unchanged. Clauses are
// evaluated in a fixed order and short-circuit per record.
//
// The date range intentionally compares a booking's start time against both
// bounds instead of computing interval overlap; table and calendar views
// depend on this behavior.
func Apply(criteria model.FilterCriteria, records []model.Booking) []model.Booking {
	if criteria.IsZero() {
		return records
	}

	matched := make([]model.Booking, 0, len(records))
	for _, b := range records {
		if matches(criteria, b) {
			matched = append(matched, b)
		}
	}
	return matched
}

func matches(c model.FilterCriteria, b model.Booking) bool {
	if c.StartDate != nil && b.StartTime.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && b.StartTime.After(*c.EndDate) {
		return false
	}

	if c.Keyword != "" && !keywordMatches(c.Keyword, b) {
		return false
	}

	if c.Urgency != "" && b.Urgency != c.Urgency {
		return false
	}

	// Only the primary doctor is matched here; assistants are covered by the
	// keyword clause.
	if c.DoctorName != "" && b.DoctorName != c.DoctorName {
		return false
	}

	if c.OperatingRoom != "" && b.OperatingRoom != c.OperatingRoom {
		return false
	}

	if len(c.Status) > 0 && !containsStatus(c.Status, b.Status) {
		return false
	}

	if c.SurgeryType != "" && b.SurgeryType != c.SurgeryType {
		return false
	}

	return true
}

func keywordMatches(keyword string, b model.Booking) bool {
	fields := make([]string, 0, 5+len(b.AssistantDoctors))
	for _, f := range []string{b.PatientName, b.InpatientNo, b.Diagnosis, b.SurgeryType, b.DoctorName} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	for _, f := range b.AssistantDoctors {
		if f != "" {
			fields = append(fields, f)
		}
	}

	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, sanitizer.NormalizeKeyword(keyword))
}

func containsStatus(set []model.Status, s model.Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
