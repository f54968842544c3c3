package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	ID        string
	Title     string
	Completed bool
	Priority  string
	Category  string
	DueLabel  string
	Overdue   bool
	DueToday  bool
	Reminder  string
}

type TaskListData struct {
	Filter     string
	Rows       []TaskRowData
	SelectedID string
}

type StatsData struct {
	Total         int
	Completed     int
	Pending       int
	High          int
	Medium        int
	Low           int
	Overdue       int
	DueToday      int
	NoDueDate     int
	WithReminders int
}

type CategoryData struct {
	Name  string
	Color string
	Count int
}

type DetailData struct {
	Title     string
	Priority  string
	Category  string
	Due       string
	Reminder  string
	CreatedAt string
	NotesView string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

var (
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectStyle  = lipgloss.NewStyle().Bold(true)
)

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks [%s]:\n", data.Filter))
	if len(data.Rows) == 0 {
		b.WriteString("  (no tasks)")
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %2d. %s %s %s", cursor, i+1, checkbox(row.Completed), priorityBadge(row.Priority), renderTitle(row))
		if row.Category != "" {
			line += " #" + row.Category
		}
		if row.DueLabel != "" {
			due := "due:" + row.DueLabel
			if row.Overdue {
				due = overdueStyle.Render(due + " (overdue)")
			}
			line += " " + due
		}
		if row.Reminder != "" {
			line += " (" + row.Reminder + ")"
		}
		if row.ID == data.SelectedID {
			line = selectStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStats(s StatsData) string {
	return fmt.Sprintf("stats:\ntotal: %d  done: %d  pending: %d\npriority: %s %d  %s %d  %s %d\noverdue: %d  today: %d  undated: %d  reminders: %d",
		s.Total, s.Completed, s.Pending,
		highStyle.Render("high"), s.High,
		mediumStyle.Render("medium"), s.Medium,
		lowStyle.Render("low"), s.Low,
		s.Overdue, s.DueToday, s.NoDueDate, s.WithReminders,
	)
}

func RenderCategories(cats []CategoryData) string {
	var b strings.Builder
	b.WriteString("categories:\n")
	if len(cats) == 0 {
		b.WriteString("  (none)")
		return b.String()
	}
	for _, c := range cats {
		name := c.Name
		if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(name)
		}
		b.WriteString(fmt.Sprintf("  %s (%d)\n", name, c.Count))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderDetail(data *DetailData) string {
	if data == nil {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	if data.Category != "" {
		b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	}
	if data.Due != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.Due))
	}
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	}
	b.WriteString(fmt.Sprintf("created: %s\n", data.CreatedAt))
	if data.NotesView != "" {
		b.WriteString("\nnotes:\n" + data.NotesView + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func priorityBadge(p string) string {
	switch p {
	case "high":
		return highStyle.Render("!!!")
	case "low":
		return lowStyle.Render("!  ")
	default:
		return mediumStyle.Render("!! ")
	}
}

func renderTitle(row TaskRowData) string {
	if row.Completed {
		return doneStyle.Render(row.Title)
	}
	return row.Title
}
