// Package conflict detects room-time collisions between surgery bookings.
package conflict

import (
	"time"

	"orsched/pkg/model"
)

// Find returns every booking in existing that occupies the candidate's
// operating room during an overlapping time window, in the order they appear
// in existing. A booking whose id equals excludeID is skipped, which lets an
// in-place update compare against everyone except itself. Pass an empty
// excludeID when checking a new booking.
//
// Pure and deterministic: no I/O, O(n) over the existing set.
func Find(candidate model.Booking, existing []model.Booking, excludeID string) []model.Booking {
	var conflicting []model.Booking

	for _, b := range existing {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.OperatingRoom != candidate.OperatingRoom {
			continue
		}
		if overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			conflicting = append(conflicting, b)
		}
	}

	return conflicting
}

// overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
