package model

import (
	"fmt"
	"time"
)

// StatusOption is the display metadata for one booking status.
type StatusOption struct {
	Label string `json:"label"`
	Value Status `json:"value"`
	Color string `json:"color"`
}

// StatusOptions lists all statuses with their display labels and colors, in
// lifecycle order.
var StatusOptions = []StatusOption{
	{Label: "Unscheduled", Value: StatusUnscheduled, Color: "#faad14"},
	{Label: "Scheduled", Value: StatusScheduled, Color: "#1890ff"},
	{Label: "In Progress", Value: StatusInProgress, Color: "#52c41a"},
	{Label: "Completed", Value: StatusCompleted, Color: "#8c8c8c"},
	{Label: "Cancelled", Value: StatusCancelled, Color: "#f5222d"},
}

// StatusLabel returns the display label for a status, falling back to the raw
// value for unknown statuses.
func StatusLabel(s Status) string {
	for _, opt := range StatusOptions {
		if opt.Value == s {
			return opt.Label
		}
	}
	return string(s)
}

// StatusColor returns the display color for a status.
func StatusColor(s Status) string {
	for _, opt := range StatusOptions {
		if opt.Value == s {
			return opt.Color
		}
	}
	return "#000000"
}

// CalendarEvent is the calendar-view projection of a booking. The full
// booking travels alongside as a typed field so views never dig through an
// untyped payload.
type CalendarEvent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	BackgroundColor string    `json:"background_color"`
	BorderColor     string    `json:"border_color"`
	Booking         Booking   `json:"booking"`
}

// ToCalendarEvent projects a booking into its calendar event.
func ToCalendarEvent(b Booking) CalendarEvent {
	color := StatusColor(b.Status)
	return CalendarEvent{
		ID:              b.ID,
		Title:           fmt.Sprintf("%s - %s", b.PatientName, b.SurgeryType),
		Start:           b.StartTime,
		End:             b.EndTime,
		BackgroundColor: color,
		BorderColor:     color,
		Booking:         b.Clone(),
	}
}
