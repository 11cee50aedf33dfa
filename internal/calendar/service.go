// Package calendar talks to the user's Google Calendar.
package calendar

import "context"

// EventTime is either a timed instant (DateTime) or an all-day date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// Event mirrors the fields of a calendar event the assistant works with.
type Event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	HTMLLink    string    `json:"htmlLink,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

// ListRequest bounds an event listing. TimeMin and TimeMax are RFC 3339.
// MaxResults <= 0 leaves the server default in place.
type ListRequest struct {
	TimeMin    string
	TimeMax    string
	MaxResults int
}

// Service is the calendar backend the agent drives. Listings return
// single events ordered by start time.
type Service interface {
	InsertEvent(ctx context.Context, event Event) (Event, error)
	ListEvents(ctx context.Context, req ListRequest) ([]Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
