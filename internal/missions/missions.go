// Package missions derives a participant's study progression from their
// bookings and attendance. Everything here is a pure function of its inputs;
// nothing is cached or persisted.
package missions

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"fitstudy/internal/domain"
)

// Targets for the count-based milestones.
const (
	TouchpointTarget    = 9
	ReinforcementTarget = 1
	FollowUpMonths      = 3
)

// Entry is one confirmed booking as seen by the engine.
type Entry struct {
	EventID   string
	Category  domain.Category
	StartTime time.Time
	Attended  bool
}

// Snapshot is the immutable input of Compute.
type Snapshot struct {
	Entries []Entry
}

// NewSnapshot joins confirmed bookings with attendance marks. An event counts
// as attended when any mark for it says so.
func NewSnapshot(bookings []*domain.BookingWithEvent, marks []domain.AttendanceMark) Snapshot {
	attended := make(map[string]bool, len(marks))
	for _, m := range marks {
		if m.Attended {
			attended[m.EventID] = true
		}
	}
	entries := make([]Entry, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || b.Booking == nil || b.Event == nil {
			continue
		}
		if b.Booking.Status != domain.BookingStatusConfirmed {
			continue
		}
		entries = append(entries, Entry{
			EventID:   b.Event.ID,
			Category:  b.Event.Category,
			StartTime: b.Event.StartTime,
			Attended:  attended[b.Event.ID],
		})
	}
	return Snapshot{Entries: entries}
}

// Engine computes missions. Location is the study time zone used for the
// follow-up unlock date; nil means UTC.
type Engine struct {
	Location *time.Location
}

type tracks struct {
	assessments []Entry
	scans       []Entry
	touchpoints []Entry
}

func partition(entries []Entry) tracks {
	var t tracks
	for _, e := range entries {
		switch e.Category {
		case domain.CategoryAssessment:
			t.assessments = append(t.assessments, e)
		case domain.CategoryScan:
			t.scans = append(t.scans, e)
		case domain.CategoryTouchpoint:
			t.touchpoints = append(t.touchpoints, e)
		case domain.CategoryOther:
		}
	}
	for _, seq := range [][]Entry{t.assessments, t.scans, t.touchpoints} {
		slices.SortStableFunc(seq, func(a, b Entry) int {
			if c := a.StartTime.Compare(b.StartTime); c != 0 {
				return c
			}
			return cmp.Compare(a.EventID, b.EventID)
		})
	}
	return t
}

// Compute returns the ordered mission list for the snapshot at time now.
func (e Engine) Compute(s Snapshot, now time.Time) []domain.MissionStatus {
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	t := partition(s.Entries)

	var unlock *time.Time
	if len(t.assessments) > 0 {
		u := AddMonthsClamped(t.assessments[0].StartTime, FollowUpMonths, loc)
		unlock = &u
	}
	var later []Entry
	if len(t.assessments) > 1 {
		later = t.assessments[1:]
	}

	first := earliestStatus(domain.MissionFirstAssessment, t.assessments)
	scan := gate(first, earliestStatus(domain.MissionFirstScan, t.scans))
	touch := gate(scan, countStatus(domain.MissionTouchpoints, t.touchpoints, TouchpointTarget))
	reinforce := gate(touch, countStatus(domain.MissionReinforcementAssessment, later, ReinforcementTarget))
	final := followUpStatus(reinforce, followUpCandidates(later, unlock), unlock, now)

	return []domain.MissionStatus{first, scan, touch, reinforce, final}
}

// gate returns next unchanged when prev is completed, and a locked
// not_started status otherwise.
func gate(prev, next domain.MissionStatus) domain.MissionStatus {
	if prev.Status == domain.MissionCompleted && !prev.Locked {
		return next
	}
	return domain.MissionStatus{ID: next.ID, Status: domain.MissionNotStarted, Locked: true}
}

func earliestStatus(id domain.MissionID, seq []Entry) domain.MissionStatus {
	switch {
	case len(seq) == 0:
		return domain.MissionStatus{ID: id, Status: domain.MissionNotStarted}
	case seq[0].Attended:
		return domain.MissionStatus{ID: id, Status: domain.MissionCompleted}
	default:
		return domain.MissionStatus{ID: id, Status: domain.MissionIncomplete}
	}
}

func countStatus(id domain.MissionID, seq []Entry, target int) domain.MissionStatus {
	attended := 0
	for _, e := range seq {
		if e.Attended {
			attended++
		}
	}
	st := domain.MissionStatus{
		ID:           id,
		ProgressText: fmt.Sprintf("%d/%d (%d booked)", min(attended, target), target, len(seq)),
	}
	switch {
	case len(seq) == 0:
		st.Status = domain.MissionNotStarted
	case attended >= target:
		st.Status = domain.MissionCompleted
	default:
		st.Status = domain.MissionIncomplete
	}
	return st
}

// followUpCandidates returns the assessments dated on or after unlock, minus
// the one that fulfilled the reinforcement milestone (the earliest attended
// assessment after the first).
func followUpCandidates(later []Entry, unlock *time.Time) []Entry {
	if unlock == nil {
		return nil
	}
	used := -1
	for i, e := range later {
		if e.Attended {
			used = i
			break
		}
	}
	var out []Entry
	for i, e := range later {
		if i != used && !e.StartTime.Before(*unlock) {
			out = append(out, e)
		}
	}
	return out
}

func followUpStatus(prev domain.MissionStatus, seq []Entry, unlock *time.Time, now time.Time) domain.MissionStatus {
	st := domain.MissionStatus{
		ID:         domain.MissionFollowUpAssessment,
		Status:     domain.MissionNotStarted,
		UnlockDate: unlock,
	}
	if unlock == nil || now.Before(*unlock) || prev.Locked || prev.Status != domain.MissionCompleted {
		st.Locked = true
		return st
	}
	if len(seq) == 0 {
		return st
	}
	st.Status = domain.MissionIncomplete
	for _, e := range seq {
		if e.Attended {
			st.Status = domain.MissionCompleted
			break
		}
	}
	return st
}
