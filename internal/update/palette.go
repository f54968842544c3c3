package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/taskstore"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	m.refresh()
	return m
}

func (m *Model) paletteHandlers() commands.Handlers {
	ctx := m.ctx
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			in := taskstore.NewTask{
				Title:        a.Title,
				Priority:     a.Priority,
				ReminderType: a.ReminderType,
			}
			if a.Category != "" {
				c, ok := model.FindCategoryByName(m.State.Categories, a.Category)
				if !ok {
					return commands.Result{}, fmt.Errorf("unknown category %q", a.Category)
				}
				in.Category = c.ID
			}
			if a.Due != "" {
				due, err := commands.ParseDue(a.Due, m.Store.Now())
				if err != nil {
					return commands.Result{}, err
				}
				in.DueDate = &due
			}
			t, err := m.Store.AddTask(ctx, in)
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedTaskID = t.ID
			return commands.Result{Message: fmt.Sprintf("added: %s", t.Title)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.Store.ToggleTask(ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			if t.Completed {
				return commands.Result{Message: fmt.Sprintf("reopened: %s", t.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", t.Title)}, nil
		},
		Remove: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.Store.DeleteTask(ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", t.Title)}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.Store.UpdateTask(ctx, t.ID, taskstore.TaskPatch{Title: &a.Title}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("renamed: %s", strings.TrimSpace(a.Title))}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			patch := taskstore.TaskPatch{ClearDueDate: a.Due == ""}
			if a.Due != "" {
				due, err := commands.ParseDue(a.Due, m.Store.Now())
				if err != nil {
					return commands.Result{}, err
				}
				patch.DueDate = &due
			}
			if _, err := m.Store.UpdateTask(ctx, t.ID, patch); err != nil {
				return commands.Result{}, err
			}
			if patch.ClearDueDate {
				return commands.Result{Message: fmt.Sprintf("due date cleared: %s", t.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("due %s: %s", model.DueLabel(*patch.DueDate, m.Store.Now()), t.Title)}, nil
		},
		Remind: func(a commands.RemindArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if a.ReminderType.Enabled() && t.DueDate == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "set a due date before adding a reminder"}
			}
			rt := a.ReminderType
			if _, err := m.Store.UpdateTask(ctx, t.ID, taskstore.TaskPatch{ReminderType: &rt}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("reminder %s: %s", rt, t.Title)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.Store.UpdateTask(ctx, t.ID, taskstore.TaskPatch{Notes: &a.Notes}); err != nil {
				return commands.Result{}, err
			}
			m.NotesVisible = a.Notes != ""
			return commands.Result{Message: fmt.Sprintf("notes updated: %s", t.Title)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			f := query.ParseFilter(a.Name, m.State.Categories)
			m.Filter = f
			m.Cursor = 0
			m.SelectedTaskID = ""
			return commands.Result{Message: "filter: " + string(f)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			if !a.Remove {
				c, err := m.Store.AddCategory(ctx, a.Name, a.Color)
				if err != nil {
					return commands.Result{}, err
				}
				return commands.Result{Message: fmt.Sprintf("category added: %s", c.Name)}, nil
			}
			c, ok := model.FindCategoryByName(m.State.Categories, a.Name)
			if !ok {
				return commands.Result{}, fmt.Errorf("unknown category %q", a.Name)
			}
			if _, err := m.Store.DeleteCategory(ctx, c.ID); err != nil {
				return commands.Result{}, err
			}
			if m.Filter == query.Filter(c.ID) {
				m.Filter = query.FilterAll
			}
			return commands.Result{Message: fmt.Sprintf("category removed: %s", c.Name)}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			moved, err := m.resolveTarget(a.Moved)
			if err != nil {
				return commands.Result{}, err
			}
			target, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			found, err := m.Store.Reorder(ctx, m.Filter, moved.ID, target.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if !found {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "both tasks must be visible in the current filter"}
			}
			m.SelectedTaskID = moved.ID
			return commands.Result{Message: fmt.Sprintf("moved: %s", moved.Title)}, nil
		},
		Snooze: func(a commands.SnoozeArgs) (commands.Result, error) {
			t, err := m.resolveTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			r, ok := scheduler.ForTask(m.State.Reminders, t.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%q has no reminder", t.Title)}
			}
			minutes := a.Minutes
			if minutes <= 0 {
				minutes = m.SnoozeMinutes
			}
			if _, err := m.Store.SnoozeReminder(ctx, r.ID, minutes); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("snoozed %q for %d min", t.Title, minutes)}, nil
		},
	}
}

// resolveTarget finds a task by its 1-based position in the visible list, or
// by id among all tasks.
func (m Model) resolveTarget(target commands.Target) (model.Task, error) {
	if i, ok := target.Index(); ok {
		if i < len(m.Visible.Tasks) {
			return m.Visible.Tasks[i], nil
		}
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%s in view", target)}
	}
	for _, t := range m.State.Tasks {
		if t.ID == string(target) {
			return t, nil
		}
	}
	return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown task %q", target)}
}
