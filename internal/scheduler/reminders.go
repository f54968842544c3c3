package scheduler

import (
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// DefaultSnoozeMinutes is used when a snooze request carries no delay.
const DefaultSnoozeMinutes = 15

// Due pairs a reminder that just fired with its owning task.
type Due struct {
	Task     model.Task
	Reminder model.Reminder
}

// ReminderTime is the instant a reminder of type rt fires for a task due at due.
func ReminderTime(due time.Time, rt model.ReminderType) time.Time {
	return due.Add(-rt.Offset())
}

// ForTask returns the reminder owned by taskID, if any.
func ForTask(reminders []model.Reminder, taskID string) (model.Reminder, bool) {
	for _, r := range reminders {
		if r.TaskID == taskID {
			return r, true
		}
	}
	return model.Reminder{}, false
}

// Derive replaces the task's reminder with a fresh one computed from its due
// date and reminder type, or removes it when either is unset. Any reminders
// for the task beyond the first are dropped as well.
func Derive(reminders []model.Reminder, task model.Task, newID func() string) []model.Reminder {
	out := without(reminders, task.ID)
	if task.DueDate == nil || !task.ReminderType.Enabled() {
		return out
	}
	return append(out, model.Reminder{
		ID:           newID(),
		TaskID:       task.ID,
		ReminderTime: ReminderTime(*task.DueDate, task.ReminderType),
		Type:         task.ReminderType,
	})
}

// Remove drops every reminder owned by taskID.
func Remove(reminders []model.Reminder, taskID string) ([]model.Reminder, bool) {
	out := without(reminders, taskID)
	return out, len(out) != len(reminders)
}

// ScanDue marks every eligible reminder as triggered and returns the fired
// pairs. Reminders whose task is gone or completed are left for Reconcile.
// changed is false when nothing fired, so callers can skip the write.
func ScanDue(now time.Time, tasks []model.Task, reminders []model.Reminder) ([]model.Reminder, []Due, bool) {
	index := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		index[t.ID] = t
	}

	var fired []Due
	out := make([]model.Reminder, len(reminders))
	copy(out, reminders)
	for i, r := range out {
		if !r.Due(now) {
			continue
		}
		task, ok := index[r.TaskID]
		if !ok || task.Completed {
			continue
		}
		r.Triggered = true
		out[i] = r
		fired = append(fired, Due{Task: task, Reminder: r})
	}
	if len(fired) == 0 {
		return reminders, nil, false
	}
	return out, fired, true
}

// Snooze re-arms a reminder so it becomes eligible again minutes after now.
func Snooze(reminders []model.Reminder, id string, now time.Time, minutes int) ([]model.Reminder, bool) {
	if minutes <= 0 {
		minutes = DefaultSnoozeMinutes
	}
	out := make([]model.Reminder, len(reminders))
	copy(out, reminders)
	for i, r := range out {
		if r.ID != id {
			continue
		}
		until := now.Add(time.Duration(minutes) * time.Minute)
		r.SnoozedUntil = &until
		r.Triggered = false
		out[i] = r
		return out, true
	}
	return reminders, false
}

// Reconcile keeps at most one reminder per task and drops reminders whose
// task is gone, completed or no longer has a due date and reminder type, as
// well as reminders of an unknown type.
func Reconcile(tasks []model.Task, reminders []model.Reminder) ([]model.Reminder, bool) {
	armed := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		armed[t.ID] = !t.Completed && t.HasReminder()
	}
	seen := make(map[string]bool, len(reminders))
	out := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if !armed[r.TaskID] || !r.Type.Enabled() || seen[r.TaskID] {
			continue
		}
		seen[r.TaskID] = true
		out = append(out, r)
	}
	if len(out) == len(reminders) {
		return reminders, false
	}
	return out, true
}

func without(reminders []model.Reminder, taskID string) []model.Reminder {
	out := make([]model.Reminder, 0, len(reminders)+1)
	for _, r := range reminders {
		if r.TaskID != taskID {
			out = append(out, r)
		}
	}
	return out
}
