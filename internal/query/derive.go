// Package query derives the visible task list and its statistics from the
// canonical task collection.
package query

import (
	"sort"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

type Stats struct {
	Total         int
	Completed     int
	Pending       int
	High          int
	Medium        int
	Low           int
	Overdue       int
	DueToday      int
	NoDueDate     int
	WithReminders int
}

type View struct {
	Filter Filter
	Tasks  []model.Task
	Stats  Stats
}

// Derive filters and sorts tasks for filter and computes statistics over the
// whole collection. Calendar-day comparisons use now's location. The input
// slice is not modified.
func Derive(tasks []model.Task, filter Filter, now time.Time) View {
	if filter == "" {
		filter = FilterAll
	}
	visible := make([]model.Task, 0, len(tasks))
	var stats Stats
	for _, t := range tasks {
		accumulate(&stats, t, now)
		if Matches(t, filter, now) {
			visible = append(visible, t)
		}
	}
	Sort(visible, now)
	return View{Filter: filter, Tasks: visible, Stats: stats}
}

// Matches reports whether t is visible under filter.
func Matches(t model.Task, filter Filter, now time.Time) bool {
	switch filter {
	case FilterAll, "":
		return true
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	case FilterHigh:
		return t.Priority.OrDefault() == model.PriorityHigh
	case FilterMedium:
		return t.Priority.OrDefault() == model.PriorityMedium
	case FilterLow:
		return t.Priority.OrDefault() == model.PriorityLow
	case FilterOverdue:
		return t.IsOverdue(now)
	case FilterToday:
		return t.IsDueToday(now)
	case FilterNoDueDate:
		return t.DueDate == nil
	default:
		return t.Category == string(filter)
	}
}

// Sort orders tasks in place: open before completed, overdue first, dated
// before undated (earliest due first), higher priority first, then manual
// order. Newer CreatedAt then ID break any remaining tie so the order is total.
func Sort(tasks []model.Task, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j], now)
	})
}

func less(a, b model.Task, now time.Time) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if ao, bo := a.IsOverdue(now), b.IsOverdue(now); ao != bo {
		return ao
	}
	if (a.DueDate != nil) != (b.DueDate != nil) {
		return a.DueDate != nil
	}
	if a.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
		return a.DueDate.Before(*b.DueDate)
	}
	if aw, bw := a.Priority.Weight(), b.Priority.Weight(); aw != bw {
		return aw > bw
	}
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

func accumulate(s *Stats, t model.Task, now time.Time) {
	s.Total++
	if t.Completed {
		s.Completed++
	} else {
		s.Pending++
	}
	switch t.Priority.OrDefault() {
	case model.PriorityHigh:
		s.High++
	case model.PriorityLow:
		s.Low++
	default:
		s.Medium++
	}
	if t.DueDate == nil {
		s.NoDueDate++
		return
	}
	if t.Completed {
		return
	}
	if t.IsOverdue(now) {
		s.Overdue++
	}
	if t.IsDueToday(now) {
		s.DueToday++
	}
	if t.ReminderType.Enabled() {
		s.WithReminders++
	}
}
