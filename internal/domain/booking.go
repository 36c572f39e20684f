package domain

import (
	"context"
	"time"
)

// BookingStatus is the lifecycle state of a booking. The only transition is
// confirmed -> cancelled.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking links one participant to one event.
// swagger:model Booking
type Booking struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	UserID    string        `json:"user_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewConfirmedBooking returns a confirmed booking with the given id.
func NewConfirmedBooking(id, eventID, userID string, now time.Time) *Booking {
	return &Booking{
		ID:        id,
		EventID:   eventID,
		UserID:    userID,
		Status:    BookingStatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BookingWithEvent bundles a booking with the event it reserves.
type BookingWithEvent struct {
	Booking *Booking `json:"booking"`
	Event   *Event   `json:"event"`
}

// ErrorKind tags why a booking operation did not succeed.
type ErrorKind string

const (
	KindInvalidInput             ErrorKind = "invalid_input"
	KindUnauthenticated          ErrorKind = "unauthenticated"
	KindUnauthorized             ErrorKind = "unauthorized"
	KindAlreadyBooked            ErrorKind = "already_booked"
	KindNotFound                 ErrorKind = "not_found"
	KindEventInPast              ErrorKind = "event_in_past"
	KindCategoryConflict         ErrorKind = "category_conflict"
	KindEventFull                ErrorKind = "event_full"
	KindCancellationWindowClosed ErrorKind = "cancellation_window_closed"
	KindInternal                 ErrorKind = "internal"
	// KindUnknown means the outcome could not be determined (timeout or
	// cancellation). Retrying CreateBooking is safe.
	KindUnknown ErrorKind = "unknown"
)

// BookingResult is the outcome of CreateBooking.
// swagger:model BookingResult
type BookingResult struct {
	Success   bool      `json:"success"`
	BookingID string    `json:"booking_id,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// CancelResult is the outcome of CancelBooking.
// swagger:model CancelResult
type CancelResult struct {
	Success   bool      `json:"success"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// CancellationCutoff is the minimum lead time before an event's start at
// which a booking may still be cancelled.
const CancellationCutoff = 24 * time.Hour

// BookingRepository defines storage operations for bookings. The locking
// methods only make sense inside a UnitOfWork.
type BookingRepository interface {
	// LockConfirmedBooking returns the confirmed booking for (userID, eventID)
	// with a row lock, or ErrNotFound.
	LockConfirmedBooking(ctx context.Context, userID, eventID string) (*Booking, error)
	// CountConfirmed returns the number of confirmed bookings for the event.
	CountConfirmed(ctx context.Context, eventID string) (int, error)
	// InsertConfirmedIfUnderCapacity inserts a confirmed booking only while the
	// live confirmed count is below capacity. Returns ErrEventFull when nothing
	// was inserted and ErrAlreadyBooked on a uniqueness violation.
	InsertConfirmedIfUnderCapacity(ctx context.Context, booking *Booking, capacity int) error
	// FindActiveSingleCategoryBooking returns a locked confirmed booking of the
	// user on an event in category starting at or after notBefore, or ErrNotFound.
	FindActiveSingleCategoryBooking(ctx context.Context, userID string, category Category, notBefore time.Time) (*Booking, error)
	// LockOwnedConfirmed returns the confirmed booking with its event when owned
	// by userID, holding a lock on the booking row, or ErrNotFound.
	LockOwnedConfirmed(ctx context.Context, bookingID, userID string) (*BookingWithEvent, error)
	// Cancel moves a confirmed booking to cancelled.
	Cancel(ctx context.Context, bookingID string, now time.Time) error
	// ListConfirmedWithEvents returns the user's confirmed bookings joined with
	// their events, ordered by event start time then event id.
	ListConfirmedWithEvents(ctx context.Context, userID string) ([]*BookingWithEvent, error)
}

// TxRepositories are the repositories bound to one transaction.
type TxRepositories struct {
	Events   EventRepository
	Bookings BookingRepository
}

// UnitOfWork runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise; row locks taken by fn are held
// until then.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// BookingService defines participant booking operations. Every call returns a
// typed result; infrastructure failures surface as KindInternal.
type BookingService interface {
	CreateBooking(ctx context.Context, requesterID, userID, eventID string, now time.Time) BookingResult
	CancelBooking(ctx context.Context, requesterID, bookingID string, now time.Time) CancelResult
	ListMyBookings(ctx context.Context, userID string) ([]*BookingWithEvent, error)
}
