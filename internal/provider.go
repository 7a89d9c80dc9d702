package internal

import (
	"context"
	"time"
)

// Provider is the remote calendar service.
type Provider interface {
	// Calendars returns every calendar of the account, in provider order.
	Calendars(context.Context) ([]*Calendar, error)
	// Events returns every event of the calendar and the sync token that
	// closed the listing.
	Events(_ context.Context, calendarID string) ([]*Event, string, error)
}

// SyncRecord is the outcome of the last completed event sync of a calendar.
type SyncRecord struct {
	CalendarID string
	SyncToken  string
	Events     int
	SyncedAt   time.Time
}
