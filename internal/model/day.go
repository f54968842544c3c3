package model

import (
	"math"
	"time"
)

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay compares calendar days in now's location.
func SameDay(t, now time.Time) bool {
	loc := now.Location()
	return StartOfDay(t, loc).Equal(StartOfDay(now, loc))
}

// DaysUntilDue counts calendar days from today to due; negative when past.
func DaysUntilDue(due, now time.Time) int {
	loc := now.Location()
	diff := StartOfDay(due, loc).Sub(StartOfDay(now, loc))
	return int(math.Round(diff.Hours() / 24))
}

// DueLabel renders a due date relative to now: "Today", "Tomorrow" or the date.
func DueLabel(due, now time.Time) string {
	switch DaysUntilDue(due, now) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return due.In(now.Location()).Format("2006-01-02")
	}
}
