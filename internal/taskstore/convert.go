package taskstore

import (
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

// State is the hydrated, in-memory form of a storage snapshot.
type State struct {
	Revision   uint64
	Tasks      []model.Task
	Categories []model.Category
	Reminders  []model.Reminder

	// pruned is set when Hydrate dropped stale reminder records.
	pruned bool
}

// Hydrate converts persisted records into domain values and fills defaults
// for fields older records lack: priority becomes medium, a missing order
// becomes the record's position, unknown reminder types and reminder types
// without a due date become none, and dangling category references are
// cleared. Reminders are reconciled against the hydrated tasks, so a task
// keeps at most one reminder and only while it is open with a due date and
// reminder type.
func Hydrate(snap storage.Snapshot) State {
	categories := make([]model.Category, 0, len(snap.Categories))
	known := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		categories = append(categories, model.Category{ID: c.ID, Name: c.Name, Color: c.Color})
		known[c.ID] = true
	}

	tasks := make([]model.Task, 0, len(snap.Tasks))
	for i, rec := range snap.Tasks {
		t := model.Task{
			ID:           rec.ID,
			Title:        rec.Title,
			Completed:    rec.Completed,
			Category:     rec.Category,
			CreatedAt:    fromMillis(rec.CreatedAt),
			Order:        i,
			Priority:     model.Priority(rec.Priority),
			Notes:        rec.Notes,
			ReminderType: model.ReminderType(rec.ReminderType),
		}
		if rec.Order != nil {
			t.Order = *rec.Order
		}
		if !t.Priority.IsValid() {
			t.Priority = model.PriorityMedium
		}
		if rec.DueDate != nil {
			due := fromMillis(*rec.DueDate)
			t.DueDate = &due
		}
		if !t.ReminderType.IsValid() || t.ReminderType == "" || t.DueDate == nil {
			t.ReminderType = model.ReminderNone
		}
		if t.Category != "" && !known[t.Category] {
			t.Category = ""
		}
		tasks = append(tasks, t)
	}

	reminders := make([]model.Reminder, 0, len(snap.Reminders))
	for _, rec := range snap.Reminders {
		r := model.Reminder{
			ID:           rec.ID,
			TaskID:       rec.TaskID,
			ReminderTime: fromMillis(rec.ReminderTime),
			Type:         model.ReminderType(rec.Type),
			Triggered:    rec.Triggered,
		}
		if rec.SnoozedUntil != nil {
			until := fromMillis(*rec.SnoozedUntil)
			r.SnoozedUntil = &until
		}
		reminders = append(reminders, r)
	}

	reminders, pruned := scheduler.Reconcile(tasks, reminders)
	return State{Tasks: tasks, Categories: categories, Reminders: reminders, pruned: pruned}
}

// Dehydrate writes domain values back into persisted records.
func Dehydrate(st State) storage.Snapshot {
	out := storage.Snapshot{
		Tasks:      make([]storage.Task, 0, len(st.Tasks)),
		Categories: make([]storage.Category, 0, len(st.Categories)),
		Reminders:  make([]storage.Reminder, 0, len(st.Reminders)),
	}
	for _, t := range st.Tasks {
		order := t.Order
		rec := storage.Task{
			ID:           t.ID,
			Title:        t.Title,
			Completed:    t.Completed,
			Category:     t.Category,
			CreatedAt:    t.CreatedAt.UnixMilli(),
			Order:        &order,
			Priority:     string(t.Priority.OrDefault()),
			Notes:        t.Notes,
			ReminderType: string(t.ReminderType),
		}
		if t.DueDate != nil {
			ms := t.DueDate.UnixMilli()
			rec.DueDate = &ms
		}
		out.Tasks = append(out.Tasks, rec)
	}
	for _, c := range st.Categories {
		out.Categories = append(out.Categories, storage.Category{ID: c.ID, Name: c.Name, Color: c.Color})
	}
	for _, r := range st.Reminders {
		rec := storage.Reminder{
			ID:           r.ID,
			TaskID:       r.TaskID,
			ReminderTime: r.ReminderTime.UnixMilli(),
			Type:         string(r.Type),
			Triggered:    r.Triggered,
		}
		if r.SnoozedUntil != nil {
			ms := r.SnoozedUntil.UnixMilli()
			rec.SnoozedUntil = &ms
		}
		out.Reminders = append(out.Reminders, rec)
	}
	return out
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
