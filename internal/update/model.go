package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/taskstore"
)

const maxNotifications = 40

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Up         string
	Down       string
	Toggle     string
	Delete     string
	MoveUp     string
	MoveDown   string
	NextFilter string
	PrevFilter string
	Notes      string
	Snooze     string
	Scan       string
	Palette    string
	Help       string
	Quit       string
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         "k",
		Down:       "j",
		Toggle:     " ",
		Delete:     "d",
		MoveUp:     "K",
		MoveDown:   "J",
		NextFilter: "f",
		PrevFilter: "F",
		Notes:      "n",
		Snooze:     "z",
		Scan:       "r",
		Palette:    "/",
		Help:       "?",
		Quit:       "q",
	}
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	Engine        *scheduler.Engine
	Filter        query.Filter
	SnoozeMinutes int
}

type Model struct {
	Store  *taskstore.Store
	Engine *scheduler.Engine

	Filter         query.Filter
	Visible        query.View
	State          taskstore.State
	Cursor         int
	SelectedTaskID string
	SnoozeMinutes  int
	LastReminder   *scheduler.Event

	Palette       CommandPaletteState
	HelpVisible   bool
	NotesVisible  bool
	Notifications []Notification
	Status        StatusBar
	Keys          KeyMap
	Quitting      bool
	LastError     error

	ctx          context.Context
	width        int
	commandInput textinput.Model
	helpModel    help.Model
	notesView    viewport.Model
}

// Messages accepted by Update besides key presses.
type (
	SetStatusMsg struct {
		Text    string
		IsError bool
	}
	ClearStatusMsg struct{}
	AppErrorMsg    struct {
		Err error
	}
	SetFilterMsg struct {
		Filter query.Filter
	}
	// StateChangedMsg is sent when the store commits a change made outside
	// the TUI, such as a reminder scan.
	StateChangedMsg struct{}
	ReminderDueMsg  struct {
		Event scheduler.Event
	}
)

func NewModel(store *taskstore.Store, opts Options) Model {
	if opts.Filter == "" {
		opts.Filter = query.FilterAll
	}
	if opts.SnoozeMinutes <= 0 {
		opts.SnoozeMinutes = scheduler.DefaultSnoozeMinutes
	}
	m := Model{
		Store:         store,
		Engine:        opts.Engine,
		Filter:        opts.Filter,
		SnoozeMinutes: opts.SnoozeMinutes,
		Keys:          DefaultKeyMap(),
		ctx:           context.Background(),
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 512
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.notesView = viewport.New(54, 12)
}
