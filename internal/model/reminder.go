package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidReminderType = errors.New("model: invalid reminder type")

type ReminderType string

const (
	ReminderNone   ReminderType = "none"
	Reminder15Min  ReminderType = "15min"
	Reminder30Min  ReminderType = "30min"
	Reminder1Hour  ReminderType = "1hour"
	Reminder2Hours ReminderType = "2hours"
	Reminder1Day   ReminderType = "1day"
	Reminder3Days  ReminderType = "3days"
	Reminder1Week  ReminderType = "1week"
)

var reminderOffsetMinutes = map[ReminderType]int{
	Reminder15Min:  15,
	Reminder30Min:  30,
	Reminder1Hour:  60,
	Reminder2Hours: 120,
	Reminder1Day:   1440,
	Reminder3Days:  4320,
	Reminder1Week:  10080,
}

// ReminderTypes lists every type in lead-time order, none first.
func ReminderTypes() []ReminderType {
	return []ReminderType{
		ReminderNone, Reminder15Min, Reminder30Min, Reminder1Hour,
		Reminder2Hours, Reminder1Day, Reminder3Days, Reminder1Week,
	}
}

func (r ReminderType) IsValid() bool {
	if r == ReminderNone {
		return true
	}
	_, ok := reminderOffsetMinutes[r]
	return ok
}

func (r ReminderType) Enabled() bool {
	return r != ReminderNone && r != "" && r.IsValid()
}

func (r ReminderType) OffsetMinutes() int {
	return reminderOffsetMinutes[r]
}

func (r ReminderType) Offset() time.Duration {
	return time.Duration(r.OffsetMinutes()) * time.Minute
}

func ParseReminderType(raw string) (ReminderType, error) {
	r := ReminderType(strings.ToLower(strings.TrimSpace(raw)))
	if r == "" {
		return ReminderNone, nil
	}
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidReminderType, raw)
	}
	return r, nil
}

type Reminder struct {
	ID           string
	TaskID       string
	ReminderTime time.Time
	Type         ReminderType
	Triggered    bool
	SnoozedUntil *time.Time
}

// Snoozed reports whether the reminder is held back at now.
func (r Reminder) Snoozed(now time.Time) bool {
	return r.SnoozedUntil != nil && r.SnoozedUntil.After(now)
}

// Due reports whether the reminder is eligible to fire at now.
func (r Reminder) Due(now time.Time) bool {
	if r.Triggered || r.Snoozed(now) {
		return false
	}
	return !r.ReminderTime.After(now)
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if strings.TrimSpace(r.TaskID) == "" {
		return errors.New("model: reminder task_id is required")
	}
	if r.ReminderTime.IsZero() {
		return errors.New("model: reminder time is required")
	}
	if !r.Type.Enabled() {
		return fmt.Errorf("%w: %q", ErrInvalidReminderType, r.Type)
	}
	return nil
}
