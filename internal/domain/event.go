package domain

import (
	"context"
	"time"
)

// Event is a scheduled study activity participants can book.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	Category  Category  `json:"category"`
	StartTime time.Time `json:"start_time"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStarted reports whether the event start is strictly before now.
func (e *Event) HasStarted(now time.Time) bool {
	return e.StartTime.Before(now)
}

// EventRepository defines the event reads the booking transaction needs.
// Events are created and edited by the admin tooling, not by this service.
type EventRepository interface {
	// LockAndGet returns the event and holds a row lock on it until the
	// surrounding transaction ends. Returns ErrNotFound when it does not exist.
	LockAndGet(ctx context.Context, eventID string) (*Event, error)
}
