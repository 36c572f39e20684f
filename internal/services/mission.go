package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fitstudy/internal/domain"
	"fitstudy/internal/missions"
)

type missionService struct {
	bookings   domain.BookingRepository
	attendance domain.AttendanceRepository
	engine     missions.Engine
}

// NewMissionService creates a MissionService. loc is the study time zone used
// for calendar-month arithmetic.
func NewMissionService(
	bookings domain.BookingRepository,
	attendance domain.AttendanceRepository,
	loc *time.Location,
) domain.MissionService {
	return &missionService{
		bookings:   bookings,
		attendance: attendance,
		engine:     missions.Engine{Location: loc},
	}
}

func (s *missionService) ComputeMissions(ctx context.Context, userID string, now time.Time) ([]domain.MissionStatus, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	var (
		bookings []*domain.BookingWithEvent
		marks    []domain.AttendanceMark
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if bookings, err = s.bookings.ListConfirmedWithEvents(gctx, userID); err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if marks, err = s.attendance.ListAttended(gctx, userID); err != nil {
			return fmt.Errorf("list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.engine.Compute(missions.NewSnapshot(bookings, marks), now), nil
}
