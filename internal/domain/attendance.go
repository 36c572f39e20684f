package domain

import "context"

// AttendanceMark is the attended flag an administrator recorded for one
// participant at one event. Measurement fields live alongside it in storage
// but are not read by this service.
type AttendanceMark struct {
	EventID  string `json:"event_id"`
	Attended bool   `json:"attended"`
}

// AttendanceRepository provides read access to attendance records.
type AttendanceRepository interface {
	ListAttended(ctx context.Context, userID string) ([]AttendanceMark, error)
}
