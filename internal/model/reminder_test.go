package model

import (
	"errors"
	"testing"
	"time"
)

func TestReminderValidateSuccess(t *testing.T) {
	rem := Reminder{
		ID:           "rem-1",
		TaskID:       "task-1",
		ReminderTime: time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC),
		Type:         Reminder1Hour,
	}
	if err := rem.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateInvalidType(t *testing.T) {
	rem := Reminder{
		ID:           "rem-1",
		TaskID:       "task-1",
		ReminderTime: time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC),
		Type:         ReminderNone,
	}
	err := rem.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrInvalidReminderType) {
		t.Fatalf("expected ErrInvalidReminderType, got: %v", err)
	}
}

func TestReminderTypeOffsets(t *testing.T) {
	want := map[ReminderType]int{
		ReminderNone:   0,
		Reminder15Min:  15,
		Reminder30Min:  30,
		Reminder1Hour:  60,
		Reminder2Hours: 120,
		Reminder1Day:   1440,
		Reminder3Days:  4320,
		Reminder1Week:  10080,
	}
	for _, item := range ReminderTypes() {
		if !item.IsValid() {
			t.Fatalf("expected valid reminder type: %q", item)
		}
		if got := item.OffsetMinutes(); got != want[item] {
			t.Fatalf("offset %q = %d, want %d", item, got, want[item])
		}
	}
	if ReminderType("other").IsValid() {
		t.Fatal("expected invalid type")
	}
	if ReminderNone.Enabled() {
		t.Fatal("none must not be enabled")
	}
}

func TestReminderDueRespectsSnoozeAndTrigger(t *testing.T) {
	at := time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC)
	rem := Reminder{ID: "r", TaskID: "t", ReminderTime: at, Type: Reminder15Min}

	if rem.Due(at.Add(-time.Second)) {
		t.Fatal("reminder must not be due before its time")
	}
	if !rem.Due(at) {
		t.Fatal("reminder should be due exactly at its time")
	}

	until := at.Add(15 * time.Minute)
	rem.SnoozedUntil = &until
	if rem.Due(at.Add(time.Minute)) {
		t.Fatal("snoozed reminder must not be due")
	}
	if !rem.Due(until) {
		t.Fatal("reminder should be due once snooze elapses")
	}

	rem.Triggered = true
	if rem.Due(until.Add(time.Hour)) {
		t.Fatal("triggered reminder must not be due again")
	}
}
