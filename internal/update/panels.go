package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) renderTaskList() string {
	now := m.now()
	rows := make([]views.TaskRowData, 0, len(m.Visible.Tasks))
	for _, t := range m.Visible.Tasks {
		row := views.TaskRowData{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Overdue:   t.IsOverdue(now),
			DueToday:  t.IsDueToday(now),
		}
		if c, ok := model.FindCategory(m.State.Categories, t.Category); ok {
			row.Category = c.Name
		}
		if t.DueDate != nil {
			row.DueLabel = model.DueLabel(*t.DueDate, now)
		}
		if t.HasReminder() && !t.Completed {
			row.Reminder = string(t.ReminderType)
		}
		rows = append(rows, row)
	}
	return views.RenderTaskList(views.TaskListData{
		Filter:     m.filterLabel(),
		Rows:       rows,
		SelectedID: m.SelectedTaskID,
	})
}

func (m Model) renderStats() string {
	s := m.Visible.Stats
	return views.RenderStats(views.StatsData{
		Total:         s.Total,
		Completed:     s.Completed,
		Pending:       s.Pending,
		High:          s.High,
		Medium:        s.Medium,
		Low:           s.Low,
		Overdue:       s.Overdue,
		DueToday:      s.DueToday,
		NoDueDate:     s.NoDueDate,
		WithReminders: s.WithReminders,
	})
}

func (m Model) renderCategories() string {
	counts := make(map[string]int, len(m.State.Categories))
	for _, t := range m.State.Tasks {
		if t.Category != "" {
			counts[t.Category]++
		}
	}
	cats := make([]views.CategoryData, 0, len(m.State.Categories))
	for _, c := range m.State.Categories {
		cats = append(cats, views.CategoryData{Name: c.Name, Color: c.Color, Count: counts[c.ID]})
	}
	return views.RenderCategories(cats)
}

func (m Model) renderDetailPane() string {
	t, ok := m.selectedTask()
	if !ok {
		return views.RenderDetail(nil)
	}
	now := m.now()
	d := &views.DetailData{
		Title:     t.Title,
		Priority:  string(t.Priority),
		CreatedAt: t.CreatedAt.Format("2006-01-02 15:04"),
	}
	if c, found := model.FindCategory(m.State.Categories, t.Category); found {
		d.Category = c.Name
	}
	if t.DueDate != nil {
		d.Due = t.DueDate.Format("2006-01-02 15:04") + " (" + model.DueLabel(*t.DueDate, now) + ")"
	}
	if t.HasReminder() {
		d.Reminder = string(t.ReminderType)
		for _, r := range m.State.Reminders {
			if r.TaskID != t.ID {
				continue
			}
			switch {
			case r.Snoozed(now):
				d.Reminder += ", snoozed until " + r.SnoozedUntil.Format("15:04")
			case r.Triggered:
				d.Reminder += ", fired"
			default:
				d.Reminder += ", at " + r.ReminderTime.Format("2006-01-02 15:04")
			}
		}
	}
	if m.NotesVisible {
		d.NotesView = m.notesView.View()
	} else if strings.TrimSpace(t.Notes) != "" {
		d.NotesView = "(press " + m.Keys.Notes + " to show)"
	}
	return views.RenderDetail(d)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

func (m Model) now() time.Time {
	if m.Store == nil {
		return time.Now()
	}
	return m.Store.Now()
}
