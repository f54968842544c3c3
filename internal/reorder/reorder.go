// Package reorder applies drag-and-drop moves within a filtered task view.
//
// Only the visible subset is renumbered, so Order is meaningful relative to
// the filter that was active during the last move. Moving tasks under
// different filters can leave an ordering under "all" that matches neither
// move; this is the intended behaviour.
package reorder

import (
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/query"
)

// Move places movedID at targetID's position in the view for filter and
// renumbers the view 0..n-1. Tasks outside the view keep their relative
// order and come first in the result, followed by the renumbered view.
// ok is false, and tasks is returned unchanged, when either id is not
// visible under filter.
func Move(tasks []model.Task, filter query.Filter, now time.Time, movedID, targetID string) ([]model.Task, bool) {
	visible := query.Derive(tasks, filter, now).Tasks

	from, to := -1, -1
	for i, t := range visible {
		switch t.ID {
		case movedID:
			from = i
		case targetID:
			to = i
		}
	}
	if movedID == targetID {
		to = from
	}
	if from < 0 || to < 0 {
		return tasks, false
	}

	moved := MoveIndex(visible, from, to)
	inView := make(map[string]bool, len(moved))
	for i := range moved {
		moved[i].Order = i
		inView[moved[i].ID] = true
	}

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !inView[t.ID] {
			out = append(out, t)
		}
	}
	return append(out, moved...), true
}

// MoveIndex returns a copy of items with the element at from reinserted at to.
func MoveIndex[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)
	item := items[from]
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
