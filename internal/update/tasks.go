package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Down, "down":
		m.moveCursor(1)
	case m.Keys.Up, "up":
		m.moveCursor(-1)
	case m.Keys.Toggle, "x", "enter":
		if t, ok := m.selectedTask(); ok {
			m.toggle(t)
		}
	case m.Keys.Delete:
		if t, ok := m.selectedTask(); ok {
			m.remove(t)
		}
	case m.Keys.MoveDown:
		m.shiftSelected(1)
	case m.Keys.MoveUp:
		m.shiftSelected(-1)
	case m.Keys.NextFilter, "tab":
		m.cycleFilter(1)
	case m.Keys.PrevFilter, "shift+tab":
		m.cycleFilter(-1)
	case m.Keys.Notes:
		m.NotesVisible = !m.NotesVisible
		m.syncNotes()
	case m.Keys.Snooze:
		m.snoozeSelected(0)
	case m.Keys.Scan:
		m.scanNow()
	}
	return m
}

// refresh reloads the visible view and keeps the selection on the same task
// when it is still visible.
func (m *Model) refresh() {
	if m.Store == nil {
		return
	}
	v, st, err := m.Store.View(m.ctx, m.Filter)
	if err != nil {
		m.fail(err)
		return
	}
	m.Visible = v
	m.State = st

	m.Cursor = clamp(m.Cursor, len(v.Tasks))
	for i, t := range v.Tasks {
		if t.ID == m.SelectedTaskID {
			m.Cursor = i
			break
		}
	}
	m.SelectedTaskID = ""
	if len(v.Tasks) > 0 {
		m.SelectedTaskID = v.Tasks[m.Cursor].ID
	}
	m.syncNotes()
}

func (m *Model) moveCursor(delta int) {
	if len(m.Visible.Tasks) == 0 {
		return
	}
	m.Cursor = clamp(m.Cursor+delta, len(m.Visible.Tasks))
	m.SelectedTaskID = m.Visible.Tasks[m.Cursor].ID
	m.syncNotes()
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible.Tasks) {
		return model.Task{}, false
	}
	return m.Visible.Tasks[m.Cursor], true
}

func (m *Model) toggle(t model.Task) {
	if _, err := m.Store.ToggleTask(m.ctx, t.ID); err != nil {
		m.fail(err)
		return
	}
	state := "completed"
	if t.Completed {
		state = "reopened"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", state, t.Title)}
	m.refresh()
}

func (m *Model) remove(t model.Task) {
	if _, err := m.Store.DeleteTask(m.ctx, t.ID); err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", t.Title)}
	m.refresh()
}

// shiftSelected swaps the selected task with its visible neighbour.
func (m *Model) shiftSelected(delta int) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	to := m.Cursor + delta
	if to < 0 || to >= len(m.Visible.Tasks) {
		return
	}
	target := m.Visible.Tasks[to]
	if _, err := m.Store.Reorder(m.ctx, m.Filter, t.ID, target.ID); err != nil {
		m.fail(err)
		return
	}
	m.SelectedTaskID = t.ID
	m.refresh()
	if m.Cursor != to {
		// order only breaks ties after priority and due date
		m.Status = StatusBar{Text: fmt.Sprintf("order saved for %q; priority and due date still lead the sort", t.Title)}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("moved: %s", t.Title)}
}

// cycleFilter steps through the named filters followed by each category.
func (m *Model) cycleFilter(delta int) {
	filters := query.Builtin()
	for _, c := range m.State.Categories {
		filters = append(filters, query.Filter(c.ID))
	}
	idx := 0
	for i, f := range filters {
		if f == m.Filter {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(filters)) % len(filters)
	m.setFilter(filters[idx])
}

func (m *Model) setFilter(f query.Filter) {
	if f == "" {
		f = query.FilterAll
	}
	m.Filter = f
	m.Cursor = 0
	m.SelectedTaskID = ""
	m.refresh()
	m.Status = StatusBar{Text: "filter: " + m.filterLabel()}
}

func (m Model) filterLabel() string {
	if id, ok := m.Filter.CategoryID(); ok {
		if c, found := model.FindCategory(m.State.Categories, id); found {
			return "#" + c.Name
		}
	}
	return string(m.Filter)
}

func (m *Model) syncNotes() {
	t, ok := m.selectedTask()
	if !ok || !m.NotesVisible {
		m.notesView.SetContent("")
		return
	}
	m.notesView.SetContent(views.RenderMarkdown(t.Notes))
	m.notesView.GotoTop()
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
