package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fitstudy/internal/domain"
)

type attendanceRepository struct {
	DB dbtx
}

func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{
		DB: db,
	}
}

func (r *attendanceRepository) ListAttended(ctx context.Context, userID string) ([]domain.AttendanceMark, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT event_id, attended FROM attendance_records WHERE user_id = $1 ORDER BY event_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	marks := []domain.AttendanceMark{}
	for rows.Next() {
		var m domain.AttendanceMark
		if err := rows.Scan(&m.EventID, &m.Attended); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return marks, nil
}
