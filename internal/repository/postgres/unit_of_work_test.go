package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"fitstudy/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_Do(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, repos domain.TxRepositories) error
		wantErr error
	}{
		{
			name: "commits on success using the transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`FROM events WHERE id = \$1 FOR UPDATE`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Baseline", nil, "assessment", eventStart, 4, ts0, ts0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, repos domain.TxRepositories) error {
				if _, err := repos.Events.LockAndGet(ctx, "ev-1"); err != nil {
					return err
				}
				_, err := repos.Bookings.CountConfirmed(ctx, "ev-1")
				return err
			},
		},
		{
			name: "rolls back when fn fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, repos domain.TxRepositories) error {
				return errBoom
			},
			wantErr: errBoom,
		},
		{
			name: "begin fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			fn: func(ctx context.Context, repos domain.TxRepositories) error {
				t.Fatal("fn must not run")
				return nil
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name: "commit fails",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(sql.ErrConnDone)
			},
			fn: func(ctx context.Context, repos domain.TxRepositories) error {
				return nil
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
			err = NewUnitOfWork(db).Do(ctx, tt.fn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUnitOfWork_DoRollsBackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	require.PanicsWithValue(t, "kaboom", func() {
		_ = NewUnitOfWork(db).Do(context.Background(), func(ctx context.Context, repos domain.TxRepositories) error {
			panic("kaboom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}
