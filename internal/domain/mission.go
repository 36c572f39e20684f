package domain

import (
	"context"
	"time"
)

// MissionID names one milestone of the study progression.
type MissionID string

const (
	MissionFirstAssessment         MissionID = "first_assessment"
	MissionFirstScan               MissionID = "first_scan"
	MissionTouchpoints             MissionID = "touchpoints"
	MissionReinforcementAssessment MissionID = "reinforcement_assessment"
	MissionFollowUpAssessment      MissionID = "follow_up_assessment"
)

// MissionState is the derived progress of a milestone.
type MissionState string

const (
	MissionNotStarted MissionState = "not_started"
	MissionIncomplete MissionState = "incomplete"
	MissionCompleted  MissionState = "completed"
)

// MissionStatus is one entry of a participant's progression. It is always
// derived from bookings and attendance and never stored.
// swagger:model MissionStatus
type MissionStatus struct {
	ID           MissionID    `json:"id"`
	Status       MissionState `json:"status"`
	Locked       bool         `json:"locked"`
	ProgressText string       `json:"progress_text,omitempty"`
	UnlockDate   *time.Time   `json:"unlock_date,omitempty"`
}

// MissionService computes mission progression for a participant.
type MissionService interface {
	ComputeMissions(ctx context.Context, userID string, now time.Time) ([]MissionStatus, error)
}
