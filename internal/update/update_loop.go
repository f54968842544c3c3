package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Engine != nil {
		return waitForReminderCmd(m.Engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.notesView.Width = views.PaneWidth(typed.Width) - 2
		return m, nil
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleTaskKey(typed), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SetFilterMsg:
		m.setFilter(typed.Filter)
		return m, nil
	case StateChangedMsg:
		m.refresh()
		return m, nil
	case ReminderDueMsg:
		m.applyReminder(typed.Event)
		if m.Engine != nil {
			return m, waitForReminderCmd(m.Engine.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := m.renderTaskList()
	if palette := m.renderCommandPalette(); palette != "" {
		left += "\n\n" + palette
	}
	right := strings.Join(nonEmpty(
		m.renderDetailPane(),
		m.renderStats(),
		m.renderCategories(),
		m.renderHelpIfVisible(),
	), "\n\n")

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskflow | filter: %s | %d of %d tasks", m.filterLabel(), len(m.Visible.Tasks), m.Visible.Stats.Total),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s/%s move | space done | %s delete | %s/%s reorder | %s filter | %s notes | %s snooze | %s cmd | %s help | %s quit",
			m.Keys.Down, m.Keys.Up, m.Keys.Delete, m.Keys.MoveDown, m.Keys.MoveUp, m.Keys.NextFilter, m.Keys.Notes, m.Keys.Snooze, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
		Width: m.width,
	})
}
