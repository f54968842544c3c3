package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rem-%d", n)
	}
}

func TestDeriveOneDayBeforeDue(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)
	task := model.Task{ID: "t1", DueDate: &due, ReminderType: model.Reminder1Day}

	out := Derive(nil, task, seqIDs())
	if len(out) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(out))
	}
	want := due.Add(-1440 * time.Minute)
	if !out[0].ReminderTime.Equal(want) {
		t.Fatalf("reminder time = %s, want %s", out[0].ReminderTime, want)
	}
	if out[0].Triggered || out[0].SnoozedUntil != nil {
		t.Fatalf("fresh reminder must be untriggered and unsnoozed: %+v", out[0])
	}
}

func TestDeriveReplacesExistingReminder(t *testing.T) {
	due := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	snoozed := due
	existing := []model.Reminder{
		{ID: "old", TaskID: "t1", ReminderTime: due, Type: model.Reminder15Min, Triggered: true, SnoozedUntil: &snoozed},
		{ID: "other", TaskID: "t2", ReminderTime: due, Type: model.Reminder15Min},
	}
	task := model.Task{ID: "t1", DueDate: &due, ReminderType: model.Reminder2Hours}

	out := Derive(existing, task, seqIDs())
	count := 0
	for _, r := range out {
		if r.TaskID == "t1" {
			count++
			if r.ID == "old" || r.Triggered || r.Type != model.Reminder2Hours {
				t.Fatalf("reminder not replaced: %+v", r)
			}
		}
	}
	if count != 1 || len(out) != 2 {
		t.Fatalf("expected exactly one reminder for t1 and two total, got %+v", out)
	}
}

func TestDeriveRemovesWhenDueDateOrTypeMissing(t *testing.T) {
	due := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	existing := []model.Reminder{{ID: "r", TaskID: "t1", ReminderTime: due, Type: model.Reminder1Hour}}

	out := Derive(existing, model.Task{ID: "t1", ReminderType: model.Reminder1Hour}, seqIDs())
	if len(out) != 0 {
		t.Fatalf("expected reminder removed without due date, got %+v", out)
	}
	out = Derive(existing, model.Task{ID: "t1", DueDate: &due, ReminderType: model.ReminderNone}, seqIDs())
	if len(out) != 0 {
		t.Fatalf("expected reminder removed for type none, got %+v", out)
	}
}

func TestScanDueFiresOnce(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{{ID: "t1", Title: "call"}}
	reminders := []model.Reminder{{ID: "r1", TaskID: "t1", ReminderTime: at, Type: model.Reminder15Min}}

	next, fired, changed := ScanDue(at, tasks, reminders)
	if !changed || len(fired) != 1 || fired[0].Task.ID != "t1" {
		t.Fatalf("expected one firing, got changed=%v fired=%+v", changed, fired)
	}
	if !next[0].Triggered {
		t.Fatal("expected reminder marked triggered")
	}
	if reminders[0].Triggered {
		t.Fatal("input reminders must not be mutated")
	}

	_, fired, changed = ScanDue(at, tasks, next)
	if changed || len(fired) != 0 {
		t.Fatalf("expected no re-emission, got changed=%v fired=%+v", changed, fired)
	}
}

func TestScanDueSkipsFutureSnoozedCompletedAndOrphaned(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)
	tasks := []model.Task{
		{ID: "future"},
		{ID: "snoozed"},
		{ID: "done", Completed: true},
	}
	reminders := []model.Reminder{
		{ID: "r-future", TaskID: "future", ReminderTime: later},
		{ID: "r-snoozed", TaskID: "snoozed", ReminderTime: now, SnoozedUntil: &later},
		{ID: "r-done", TaskID: "done", ReminderTime: now},
		{ID: "r-orphan", TaskID: "gone", ReminderTime: now},
	}
	next, fired, changed := ScanDue(now, tasks, reminders)
	if changed || len(fired) != 0 {
		t.Fatalf("expected nothing to fire, got %+v", fired)
	}
	if len(next) != len(reminders) {
		t.Fatalf("scan must leave stale reminders for reconcile, got %+v", next)
	}
}

func TestSnoozeRearmsTriggeredReminder(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{{ID: "t1"}}
	reminders := []model.Reminder{{ID: "r1", TaskID: "t1", ReminderTime: now.Add(-time.Hour), Triggered: true}}

	next, ok := Snooze(reminders, "r1", now, 0)
	if !ok {
		t.Fatal("expected snooze to find reminder")
	}
	if next[0].Triggered || next[0].SnoozedUntil == nil || !next[0].SnoozedUntil.Equal(now.Add(15*time.Minute)) {
		t.Fatalf("unexpected snoozed reminder: %+v", next[0])
	}

	if _, fired, _ := ScanDue(now.Add(14*time.Minute), tasks, next); len(fired) != 0 {
		t.Fatal("reminder fired while snoozed")
	}
	if _, fired, _ := ScanDue(now.Add(15*time.Minute), tasks, next); len(fired) != 1 {
		t.Fatal("reminder should fire again once snooze elapses")
	}

	if _, ok := Snooze(reminders, "missing", now, 5); ok {
		t.Fatal("snooze on unknown id should report not found")
	}
}

func TestReconcileDropsStaleReminders(t *testing.T) {
	due := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "open", DueDate: &due, ReminderType: model.Reminder1Day},
		{ID: "done", Completed: true, DueDate: &due, ReminderType: model.Reminder1Day},
		{ID: "undated", ReminderType: model.ReminderNone},
	}
	reminders := []model.Reminder{
		{ID: "r1", TaskID: "open", Type: model.Reminder1Day},
		{ID: "r2", TaskID: "done", Type: model.Reminder1Day},
		{ID: "r3", TaskID: "gone", Type: model.Reminder1Day},
		{ID: "r4", TaskID: "open", Type: model.Reminder1Day},
		{ID: "r5", TaskID: "undated", Type: model.Reminder1Day},
	}
	out, changed := Reconcile(tasks, reminders)
	if !changed || len(out) != 1 || out[0].ID != "r1" {
		t.Fatalf("unexpected reconcile result: changed=%v out=%+v", changed, out)
	}
	if _, changed := Reconcile(tasks, out); changed {
		t.Fatal("reconcile should be stable")
	}
}

func TestReconcileDropsUnknownReminderType(t *testing.T) {
	due := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{{ID: "t1", DueDate: &due, ReminderType: model.Reminder1Hour}}
	reminders := []model.Reminder{
		{ID: "bad", TaskID: "t1", Type: "5min"},
		{ID: "good", TaskID: "t1", Type: model.Reminder1Hour},
	}
	out, changed := Reconcile(tasks, reminders)
	if !changed || len(out) != 1 || out[0].ID != "good" {
		t.Fatalf("unexpected reconcile result: changed=%v out=%+v", changed, out)
	}
}
