package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitstudy/internal/domain"
)

const bookingColumns = `b.id, b.event_id, b.user_id, b.status, b.created_at, b.updated_at`

const bookingWithEventColumns = bookingColumns + `,
	e.id, e.title, e.location, e.category, e.start_time, e.capacity, e.created_at, e.updated_at`

type bookingRepository struct {
	DB dbtx
}

// NewBookingRepository returns a BookingRepository outside any transaction.
func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) LockConfirmedBooking(ctx context.Context, userID, eventID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		WHERE b.user_id = $1 AND b.event_id = $2 AND b.status = 'confirmed'
		FOR UPDATE
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, userID, eventID))
	if err != nil {
		return nil, fmt.Errorf("lock confirmed booking: %w", err)
	}
	return b, nil
}

func (r *bookingRepository) CountConfirmed(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND status = 'confirmed'`,
		eventID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count confirmed bookings: %w", err)
	}
	return n, nil
}

// InsertConfirmedIfUnderCapacity re-derives the confirmed count inside the
// INSERT itself, so the capacity check and the write are one statement.
// Callers hold the event row lock, which serialises concurrent inserts for
// the same event.
func (r *bookingRepository) InsertConfirmedIfUnderCapacity(ctx context.Context, b *domain.Booking, capacity int) error {
	query := `
		INSERT INTO bookings (id, event_id, user_id, status, created_at, updated_at)
		SELECT $1, $2, $3, 'confirmed', $4, $5
		WHERE (
			SELECT COUNT(*) FROM bookings WHERE event_id = $2 AND status = 'confirmed'
		) < $6
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.ID, b.EventID, b.UserID, b.CreatedAt, b.UpdatedAt, capacity).
		Scan(&b.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventFull
		}
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBooked
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	b.Status = domain.BookingStatusConfirmed
	return nil
}

// FindActiveSingleCategoryBooking first takes a transaction-scoped advisory
// lock on (user, category). Row locks alone cannot cover the case where no
// matching booking exists yet and two bookings for different events of the
// same category race.
func (r *bookingRepository) FindActiveSingleCategoryBooking(ctx context.Context, userID string, category domain.Category, notBefore time.Time) (*domain.Booking, error) {
	if _, err := r.DB.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		"booking-category:"+userID+":"+category.String(),
	); err != nil {
		return nil, fmt.Errorf("lock user category: %w", err)
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		  AND b.status = 'confirmed'
		  AND e.category = $2
		  AND e.start_time >= $3
		ORDER BY e.start_time, e.id
		LIMIT 1
		FOR UPDATE OF b
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, userID, category, notBefore))
	if err != nil {
		return nil, fmt.Errorf("find active %s booking: %w", category, err)
	}
	return b, nil
}

func (r *bookingRepository) LockOwnedConfirmed(ctx context.Context, bookingID, userID string) (*domain.BookingWithEvent, error) {
	query := `
		SELECT ` + bookingWithEventColumns + `
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.id = $1 AND b.user_id = $2 AND b.status = 'confirmed'
		FOR UPDATE OF b
	`
	bwe, err := scanBookingWithEvent(r.DB.QueryRowContext(ctx, query, bookingID, userID))
	if err != nil {
		return nil, fmt.Errorf("lock owned booking: %w", err)
	}
	return bwe, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID string, now time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = $2 WHERE id = $1 AND status = 'confirmed'`,
		bookingID, now,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListConfirmedWithEvents(ctx context.Context, userID string) ([]*domain.BookingWithEvent, error) {
	query := `
		SELECT ` + bookingWithEventColumns + `
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1 AND b.status = 'confirmed'
		ORDER BY e.start_time, e.id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []*domain.BookingWithEvent
	for rows.Next() {
		bwe, err := scanBookingWithEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, bwe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.BookingWithEvent{}
	}
	return out, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.EventID, &b.UserID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func scanBookingWithEvent(row rowScanner) (*domain.BookingWithEvent, error) {
	b := &domain.Booking{}
	e := &domain.Event{}
	var location sql.NullString
	err := row.Scan(
		&b.ID, &b.EventID, &b.UserID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&e.ID, &e.Title, &location, &e.Category, &e.StartTime, &e.Capacity, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if location.Valid {
		e.Location = location.String
	}
	return &domain.BookingWithEvent{Booking: b, Event: e}, nil
}
