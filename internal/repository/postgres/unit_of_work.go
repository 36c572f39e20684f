package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fitstudy/internal/domain"
)

type unitOfWork struct {
	DB *sql.DB
}

// NewUnitOfWork returns a UnitOfWork whose repositories share one *sql.Tx.
func NewUnitOfWork(db *sql.DB) domain.UnitOfWork {
	return &unitOfWork{DB: db}
}

// Do begins a transaction, runs fn with transaction-bound repositories and
// commits. Any error from fn, or a panic, rolls the transaction back; the
// panic is re-raised after rollback.
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) (err error) {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	repos := domain.TxRepositories{
		Events:   &eventRepository{DB: tx},
		Bookings: &bookingRepository{DB: tx},
	}
	if err = fn(ctx, repos); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
