package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitstudy/internal/domain"
)

const eventColumns = `id, title, location, category, start_time, capacity, created_at, updated_at`

// eventRepository is only built by the UnitOfWork, bound to its transaction.
type eventRepository struct {
	DB dbtx
}

func (r *eventRepository) LockAndGet(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID))
	if err != nil {
		return nil, fmt.Errorf("lock event: %w", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var location sql.NullString
	err := row.Scan(&e.ID, &e.Title, &location, &e.Category, &e.StartTime, &e.Capacity, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if location.Valid {
		e.Location = location.String
	}
	return e, nil
}
