package model

import (
	"testing"
	"time"
)

func TestDueLabel(t *testing.T) {
	now := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		due  time.Time
		want string
	}{
		{time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC), "Today"},
		{time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC), "Tomorrow"},
		{time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), "2026-10-20"},
		{time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC), "2026-10-16"},
	}
	for _, tc := range cases {
		if got := DueLabel(tc.due, now); got != tc.want {
			t.Fatalf("DueLabel(%s) = %q, want %q", tc.due.Format(time.RFC3339), got, tc.want)
		}
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)
	if got := DaysUntilDue(time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC), now); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysUntilDue(time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC), now); got != -2 {
		t.Fatalf("expected -2 days, got %d", got)
	}
}
