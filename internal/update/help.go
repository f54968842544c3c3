package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paletteBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move cursor"},
		{Key: "space", Action: "toggle done"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: m.Keys.MoveDown + "/" + m.Keys.MoveUp, Action: "reorder within filter"},
		{Key: m.Keys.NextFilter + "/" + m.Keys.PrevFilter, Action: "cycle filter"},
		{Key: m.Keys.Notes, Action: "toggle notes"},
		{Key: m.Keys.Snooze, Action: "snooze reminder"},
		{Key: m.Keys.Scan, Action: "scan reminders now"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) paletteBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "add <title> [!prio] [#cat] [due:date] [remind:type]", Action: "new task"},
		{Key: "done|rm <n>", Action: "toggle or delete task n"},
		{Key: "edit <n> <title>", Action: "rename"},
		{Key: "due <n> <date|none>", Action: "set or clear due date"},
		{Key: "remind <n> <type>", Action: "set reminder lead time"},
		{Key: "note <n> <markdown>", Action: "replace notes"},
		{Key: "filter <name>", Action: "switch filter"},
		{Key: "cat add|rm <name>", Action: "manage categories"},
		{Key: "move <n> <m>", Action: "reorder"},
		{Key: "snooze <n> [min]", Action: "snooze reminder"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
