package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"fitstudy/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bookingCols          = []string{"id", "event_id", "user_id", "status", "created_at", "updated_at"}
	bookingWithEventCols = append(append([]string{}, bookingCols...), "e_id", "title", "location", "category", "start_time", "capacity", "e_created_at", "e_updated_at")
)

func TestBookingRepository_LockConfirmedBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Booking
		wantErr error
	}{
		{
			name: "existing booking",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM bookings b WHERE b.user_id = \$1 AND b.event_id = \$2 AND b.status = 'confirmed' FOR UPDATE`).
					WithArgs("u1", "ev-1").
					WillReturnRows(sqlmock.NewRows(bookingCols).AddRow("bk-1", "ev-1", "u1", "confirmed", ts0, ts0))
			},
			want: &domain.Booking{ID: "bk-1", EventID: "ev-1", UserID: "u1", Status: domain.BookingStatusConfirmed, CreatedAt: ts0, UpdatedAt: ts0},
		},
		{
			name: "none",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM bookings b`).
					WithArgs("u1", "ev-1").
					WillReturnRows(sqlmock.NewRows(bookingCols))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM bookings b`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewBookingRepository(db).LockConfirmedBooking(ctx, "u1", "ev-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_CountConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE event_id = \$1 AND status = 'confirmed'`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := NewBookingRepository(db).CountConfirmed(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertConfirmedIfUnderCapacity(t *testing.T) {
	ctx := context.Background()
	insert := `INSERT INTO bookings \(id, event_id, user_id, status, created_at, updated_at\) SELECT \$1, \$2, \$3, 'confirmed', \$4, \$5 WHERE \( SELECT COUNT\(\*\) FROM bookings WHERE event_id = \$2 AND status = 'confirmed' \) < \$6 RETURNING id`

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "inserted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).
					WithArgs("bk-1", "ev-1", "u1", ts0, ts0, 2).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("bk-1"))
			},
		},
		{
			name: "capacity reached inserts nothing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).
					WithArgs("bk-1", "ev-1", "u1", ts0, ts0, 2).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name: "unique violation maps to already booked",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			wantErr: domain.ErrAlreadyBooked,
		},
		{
			name: "other db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(insert).WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: errors.New("insert booking"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			b := domain.NewConfirmedBooking("bk-1", "ev-1", "u1", ts0)
			err = NewBookingRepository(db).InsertConfirmedIfUnderCapacity(ctx, b, 2)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, "bk-1", b.ID)
				assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
			case errors.Is(tt.wantErr, domain.ErrEventFull), errors.Is(tt.wantErr, domain.ErrAlreadyBooked):
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.ErrorContains(t, err, tt.wantErr.Error())
				require.NotErrorIs(t, err, domain.ErrAlreadyBooked)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_FindActiveSingleCategoryBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "conflict found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("booking-category:u1:assessment").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`JOIN events e ON e.id = b.event_id WHERE b.user_id = \$1 AND b.status = 'confirmed' AND e.category = \$2 AND e.start_time >= \$3 ORDER BY e.start_time, e.id LIMIT 1 FOR UPDATE OF b`).
					WithArgs("u1", "assessment", now).
					WillReturnRows(sqlmock.NewRows(bookingCols).AddRow("bk-9", "ev-9", "u1", "confirmed", ts0, ts0))
			},
			wantID: "bk-9",
		},
		{
			name: "no conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`e.category = \$2`).
					WithArgs("u1", "assessment", now).
					WillReturnRows(sqlmock.NewRows(bookingCols))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "advisory lock fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewBookingRepository(db).FindActiveSingleCategoryBooking(ctx, "u1", domain.CategoryAssessment, now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, got.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_LockOwnedConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE b.id = \$1 AND b.user_id = \$2 AND b.status = 'confirmed' FOR UPDATE OF b`).
		WithArgs("bk-1", "u1").
		WillReturnRows(sqlmock.NewRows(bookingWithEventCols).
			AddRow("bk-1", "ev-1", "u1", "confirmed", ts0, ts0, "ev-1", "DEXA", nil, "scan", eventStart, 4, ts0, ts0))

	got, err := NewBookingRepository(db).LockOwnedConfirmed(context.Background(), "bk-1", "u1")
	require.NoError(t, err)
	require.Equal(t, "bk-1", got.Booking.ID)
	require.Equal(t, domain.CategoryScan, got.Event.Category)
	require.Equal(t, eventStart, got.Event.StartTime)
	require.Empty(t, got.Event.Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Cancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		result  driver.Result
		err     error
		wantErr error
	}{
		{name: "cancelled", result: sqlmock.NewResult(0, 1)},
		{name: "not confirmed", result: sqlmock.NewResult(0, 0), wantErr: domain.ErrNotFound},
		{name: "db error", err: sql.ErrConnDone, wantErr: sql.ErrConnDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exp := mock.ExpectExec(`UPDATE bookings SET status = 'cancelled', updated_at = \$2 WHERE id = \$1 AND status = 'confirmed'`).
				WithArgs("bk-1", now)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err = NewBookingRepository(db).Cancel(ctx, "bk-1", now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ListConfirmedWithEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE b.user_id = \$1 AND b.status = 'confirmed' ORDER BY e.start_time, e.id`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows(bookingWithEventCols).
				AddRow("bk-1", "ev-1", "u1", "confirmed", ts0, ts0, "ev-1", "Baseline", "Lab", "assessment", eventStart, 4, ts0, ts0).
				AddRow("bk-2", "ev-2", "u1", "confirmed", ts0, ts0, "ev-2", "Check-in", nil, "touchpoint", eventStart.Add(time.Hour), 20, ts0, ts0))

		got, err := NewBookingRepository(db).ListConfirmedWithEvents(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Lab", got[0].Event.Location)
		assert.Equal(t, domain.CategoryTouchpoint, got[1].Event.Category)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty returns empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM bookings b`).WillReturnRows(sqlmock.NewRows(bookingWithEventCols))
		got, err := NewBookingRepository(db).ListConfirmedWithEvents(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}
