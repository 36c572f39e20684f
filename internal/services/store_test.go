package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"fitstudy/internal/domain"
)

// memStore is an in-memory UnitOfWork. Transactions run one at a time, which
// is what the event row lock gives concurrent bookers of one event, and a
// failed transaction restores the bookings it started with.
//
// The concurrency tests in this package rely on mu standing in for the
// Postgres row lock, the advisory lock and the conditional insert. They check
// the service logic under serial transactions, not the locking itself; that is
// covered by the sqlmock tests for the SQL text and by the integration-tagged
// tests in internal/repository/postgres against a live database.
type memStore struct {
	mu       sync.Mutex
	events   map[string]*domain.Event
	bookings []*domain.Booking
	txCount  int

	// failure injection
	lockBookingErr error
	lockEventErr   error
	findErr        error
	insertErr      error
	cancelErr      error
	panicOnLock    bool
	blockUntilDone bool
}

func newMemStore(events ...*domain.Event) *memStore {
	s := &memStore{events: map[string]*domain.Event{}}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txCount++

	if s.blockUntilDone {
		<-ctx.Done()
		return ctx.Err()
	}

	saved := make([]*domain.Booking, len(s.bookings))
	for i, b := range s.bookings {
		cp := *b
		saved[i] = &cp
	}
	defer func() {
		if p := recover(); p != nil {
			s.bookings = saved
			panic(p)
		}
		if err != nil {
			s.bookings = saved
		}
	}()

	repo := &memRepo{s: s}
	return fn(ctx, domain.TxRepositories{Events: repo, Bookings: repo})
}

func (s *memStore) confirmed(eventID string) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.EventID == eventID && b.Status == domain.BookingStatusConfirmed {
			out = append(out, b)
		}
	}
	return out
}

// snapshotConfirmed is safe to call from tests after concurrent work.
func (s *memStore) snapshotConfirmed(eventID string) []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.confirmed(eventID) {
		out = append(out, *b)
	}
	return out
}

// memRepo implements EventRepository and BookingRepository over memStore.
// Callers already hold memStore.mu except for ListConfirmedWithEvents.
type memRepo struct {
	s *memStore
}

func (r *memRepo) LockAndGet(_ context.Context, eventID string) (*domain.Event, error) {
	if r.s.panicOnLock {
		panic("lock blew up")
	}
	if r.s.lockEventErr != nil {
		return nil, r.s.lockEventErr
	}
	e, ok := r.s.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memRepo) LockConfirmedBooking(_ context.Context, userID, eventID string) (*domain.Booking, error) {
	if r.s.lockBookingErr != nil {
		return nil, r.s.lockBookingErr
	}
	for _, b := range r.s.confirmed(eventID) {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) CountConfirmed(_ context.Context, eventID string) (int, error) {
	return len(r.s.confirmed(eventID)), nil
}

func (r *memRepo) InsertConfirmedIfUnderCapacity(ctx context.Context, b *domain.Booking, capacity int) error {
	if r.s.insertErr != nil {
		return r.s.insertErr
	}
	for _, existing := range r.s.confirmed(b.EventID) {
		if existing.UserID == b.UserID {
			return domain.ErrAlreadyBooked
		}
	}
	if n, _ := r.CountConfirmed(ctx, b.EventID); n >= capacity {
		return domain.ErrEventFull
	}
	cp := *b
	r.s.bookings = append(r.s.bookings, &cp)
	return nil
}

func (r *memRepo) FindActiveSingleCategoryBooking(_ context.Context, userID string, category domain.Category, notBefore time.Time) (*domain.Booking, error) {
	if r.s.findErr != nil {
		return nil, r.s.findErr
	}
	for _, b := range r.s.bookings {
		if b.UserID != userID || b.Status != domain.BookingStatusConfirmed {
			continue
		}
		e := r.s.events[b.EventID]
		if e != nil && e.Category == category && !e.StartTime.Before(notBefore) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) LockOwnedConfirmed(_ context.Context, bookingID, userID string) (*domain.BookingWithEvent, error) {
	for _, b := range r.s.bookings {
		if b.ID == bookingID && b.UserID == userID && b.Status == domain.BookingStatusConfirmed {
			cp := *b
			ev := *r.s.events[b.EventID]
			return &domain.BookingWithEvent{Booking: &cp, Event: &ev}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) Cancel(_ context.Context, bookingID string, now time.Time) error {
	if r.s.cancelErr != nil {
		return r.s.cancelErr
	}
	for _, b := range r.s.bookings {
		if b.ID == bookingID && b.Status == domain.BookingStatusConfirmed {
			b.Status = domain.BookingStatusCancelled
			b.UpdatedAt = now
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memRepo) ListConfirmedWithEvents(_ context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*domain.BookingWithEvent{}
	for _, b := range r.s.bookings {
		if b.UserID != userID || b.Status != domain.BookingStatusConfirmed {
			continue
		}
		cp := *b
		ev := *r.s.events[b.EventID]
		out = append(out, &domain.BookingWithEvent{Booking: &cp, Event: &ev})
	}
	slices.SortFunc(out, func(a, b *domain.BookingWithEvent) int {
		return a.Event.StartTime.Compare(b.Event.StartTime)
	})
	return out, nil
}
