package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitstudy/internal/domain"
)

var (
	errEventInPast = errors.New("event has already started")
)

type categoryConflictError struct {
	category domain.Category
}

func (e *categoryConflictError) Error() string {
	return fmt.Sprintf("active %s booking exists", e.category)
}

type windowClosedError struct {
	remaining time.Duration
}

func (e *windowClosedError) Error() string {
	return fmt.Sprintf("cancellation window closed (%s before start)", e.remaining)
}

type bookingService struct {
	uow      domain.UnitOfWork
	bookings domain.BookingRepository
	logger   *slog.Logger
	timeout  time.Duration
	newID    func() string
}

// NewBookingService creates a BookingService. timeout bounds each booking
// transaction; zero disables the service-side limit.
func NewBookingService(
	uow domain.UnitOfWork,
	bookings domain.BookingRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		uow:      uow,
		bookings: bookings,
		logger:   logger,
		timeout:  timeout,
		newID:    uuid.NewString,
	}
}

func bookingFailure(kind domain.ErrorKind, msg string) domain.BookingResult {
	return domain.BookingResult{Success: false, ErrorKind: kind, Message: msg}
}

func cancelFailure(kind domain.ErrorKind, msg string) domain.CancelResult {
	return domain.CancelResult{Success: false, ErrorKind: kind, Message: msg}
}

func (s *bookingService) CreateBooking(ctx context.Context, requesterID, userID, eventID string, now time.Time) (res domain.BookingResult) {
	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	requesterID = strings.TrimSpace(requesterID)

	if userID == "" || eventID == "" {
		return bookingFailure(domain.KindInvalidInput, "user_id and event_id are required.")
	}
	if _, err := uuid.Parse(eventID); err != nil {
		return bookingFailure(domain.KindInvalidInput, "event_id is not a valid id.")
	}
	if requesterID == "" {
		return bookingFailure(domain.KindUnauthenticated, "You need to sign in to book an event.")
	}
	if requesterID != userID {
		return bookingFailure(domain.KindUnauthorized, "You can only book events for yourself.")
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "create booking panicked", "user_id", userID, "event_id", eventID, "panic", p)
			res = bookingFailure(domain.KindInternal, internalMessage)
		}
	}()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking := domain.NewConfirmedBooking(s.newID(), eventID, userID, now)
	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
		if _, err := repos.Bookings.LockConfirmedBooking(ctx, userID, eventID); err == nil {
			return domain.ErrAlreadyBooked
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		event, err := repos.Events.LockAndGet(ctx, eventID)
		if err != nil {
			return err
		}
		if event.HasStarted(now) {
			return errEventInPast
		}

		if event.Category.SingleActive() {
			if _, err := repos.Bookings.FindActiveSingleCategoryBooking(ctx, userID, event.Category, now); err == nil {
				return &categoryConflictError{category: event.Category}
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}

		return repos.Bookings.InsertConfirmedIfUnderCapacity(ctx, booking, event.Capacity)
	})
	if err != nil {
		kind, msg := s.classify(ctx, err)
		if kind == domain.KindInternal || kind == domain.KindUnknown {
			s.logger.ErrorContext(ctx, "create booking failed", "user_id", userID, "event_id", eventID, "kind", kind, "err", err)
		}
		return bookingFailure(kind, msg)
	}

	s.logger.InfoContext(ctx, "booking created", "booking_id", booking.ID, "user_id", userID, "event_id", eventID)
	return domain.BookingResult{Success: true, BookingID: booking.ID}
}

func (s *bookingService) CancelBooking(ctx context.Context, requesterID, bookingID string, now time.Time) (res domain.CancelResult) {
	bookingID = strings.TrimSpace(bookingID)
	requesterID = strings.TrimSpace(requesterID)

	if bookingID == "" {
		return cancelFailure(domain.KindInvalidInput, "booking_id is required.")
	}
	if _, err := uuid.Parse(bookingID); err != nil {
		return cancelFailure(domain.KindInvalidInput, "booking_id is not a valid id.")
	}
	if requesterID == "" {
		return cancelFailure(domain.KindUnauthenticated, "You need to sign in to cancel a booking.")
	}

	defer func() {
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "cancel booking panicked", "user_id", requesterID, "booking_id", bookingID, "panic", p)
			res = cancelFailure(domain.KindInternal, internalMessage)
		}
	}()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.uow.Do(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
		owned, err := repos.Bookings.LockOwnedConfirmed(ctx, bookingID, requesterID)
		if err != nil {
			return err
		}
		if remaining := owned.Event.StartTime.Sub(now); remaining < domain.CancellationCutoff {
			return &windowClosedError{remaining: remaining}
		}
		return repos.Bookings.Cancel(ctx, bookingID, now)
	})
	if err != nil {
		var closed *windowClosedError
		if errors.As(err, &closed) {
			hours := max(int(closed.remaining/time.Hour), 0)
			return cancelFailure(domain.KindCancellationWindowClosed, fmt.Sprintf(
				"Bookings can only be cancelled at least 24 hours before the event starts (%d hours left).", hours))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return cancelFailure(domain.KindNotFound, "Booking not found.")
		}
		kind, msg := s.classify(ctx, err)
		s.logger.ErrorContext(ctx, "cancel booking failed", "user_id", requesterID, "booking_id", bookingID, "kind", kind, "err", err)
		return cancelFailure(kind, msg)
	}

	s.logger.InfoContext(ctx, "booking cancelled", "booking_id", bookingID, "user_id", requesterID)
	return domain.CancelResult{Success: true}
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	list, err := s.bookings.ListConfirmedWithEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

const (
	internalMessage = "Something went wrong. Please try again later."
	unknownMessage  = "We could not confirm the outcome in time. Please try again."
)

// classify maps an error from the booking transaction to the result kind and
// participant-facing message. Unrecognised errors become KindInternal and keep
// their detail out of the message.
func (s *bookingService) classify(ctx context.Context, err error) (domain.ErrorKind, string) {
	var conflict *categoryConflictError
	switch {
	case errors.Is(err, domain.ErrAlreadyBooked):
		return domain.KindAlreadyBooked, "You already have a booking for this event."
	case errors.Is(err, domain.ErrNotFound):
		return domain.KindNotFound, "Event not found."
	case errors.Is(err, errEventInPast):
		return domain.KindEventInPast, "This event has already started and can no longer be booked."
	case errors.As(err, &conflict):
		return domain.KindCategoryConflict, fmt.Sprintf(
			"You already have an upcoming %s booked. Cancel it or attend it before booking another.",
			conflict.category.DisplayName())
	case errors.Is(err, domain.ErrEventFull):
		return domain.KindEventFull, "This event is fully booked."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), ctx.Err() != nil:
		return domain.KindUnknown, unknownMessage
	}
	return domain.KindInternal, internalMessage
}

func (s *bookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}
