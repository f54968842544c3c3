package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
)

func waitForReminderCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m *Model) applyReminder(ev scheduler.Event) {
	last := ev
	m.LastReminder = &last
	body := ev.Task.Title
	if ev.Task.DueDate != nil {
		body = fmt.Sprintf("%s (due %s)", ev.Task.Title, model.DueLabel(*ev.Task.DueDate, ev.FiredAt))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", body)}
	m.notify("Reminder", body, "reminder")
	m.refresh()
}

// snoozeSelected snoozes the selected task's reminder, falling back to the
// most recently fired one.
func (m *Model) snoozeSelected(minutes int) {
	if t, ok := m.selectedTask(); ok {
		if r, found := scheduler.ForTask(m.State.Reminders, t.ID); found {
			m.snooze(r, t.Title, minutes)
			return
		}
	}
	if m.LastReminder != nil {
		m.snooze(m.LastReminder.Reminder, m.LastReminder.Task.Title, minutes)
		return
	}
	m.Status = StatusBar{Text: "no reminder to snooze", IsError: true}
}

func (m *Model) snooze(r model.Reminder, title string, minutes int) {
	if minutes <= 0 {
		minutes = m.SnoozeMinutes
	}
	found, err := m.Store.SnoozeReminder(m.ctx, r.ID, minutes)
	if err != nil {
		m.fail(err)
		return
	}
	if !found {
		m.Status = StatusBar{Text: "reminder no longer exists", IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("snoozed %q for %d min", title, minutes)}
	m.refresh()
}

// scanNow runs a reminder pass immediately; fired reminders arrive through
// the engine channel like scheduled ones.
func (m *Model) scanNow() {
	if m.Engine == nil {
		m.Status = StatusBar{Text: "reminder engine not running", IsError: true}
		return
	}
	n, err := m.Engine.RunOnce(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("reminder scan: %d fired", n)}
	m.refresh()
}
