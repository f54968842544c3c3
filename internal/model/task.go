package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrEmptyTitle      = errors.New("model: task title is required")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight ranks priorities for sorting; an absent priority weighs as medium.
func (p Priority) Weight() int {
	switch p.OrDefault() {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Task struct {
	ID           string
	Title        string
	Completed    bool
	Category     string
	CreatedAt    time.Time
	Order        int
	Priority     Priority
	DueDate      *time.Time
	Notes        string
	ReminderType ReminderType
}

func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

func (t Task) HasReminder() bool {
	return t.DueDate != nil && t.ReminderType.Enabled()
}

// IsOverdue reports whether an open task's due day is strictly before today.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return StartOfDay(*t.DueDate, now.Location()).Before(StartOfDay(now, now.Location()))
}

// IsDueToday ignores completion; callers that count open work check Completed.
func (t Task) IsDueToday(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return SameDay(*t.DueDate, now)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.ReminderType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidReminderType, t.ReminderType)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.DueDate == nil && t.ReminderType != ReminderNone {
		return errors.New("model: reminder type requires a due date")
	}
	return nil
}
