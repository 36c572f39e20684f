package missions

import "time"

// AddMonthsClamped returns midnight, in loc, of the calendar date that is
// months after t's date in loc. When the day does not exist in the target
// month it is clamped to that month's last day, so Jan 31 + 3 months is
// Apr 30 rather than May 1 (which time.AddDate would give).
func AddMonthsClamped(t time.Time, months int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, loc)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
