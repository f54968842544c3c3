package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeRemove   Type = "rm"
	TypeEdit     Type = "edit"
	TypeDue      Type = "due"
	TypeRemind   Type = "remind"
	TypeNote     Type = "note"
	TypeFilter   Type = "filter"
	TypeCategory Type = "cat"
	TypeMove     Type = "move"
	TypeSnooze   Type = "snooze"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs is parsed from "add <title> [!prio] [#category] [due:<date>] [remind:<type>]".
type AddArgs struct {
	Title        string
	Priority     model.Priority
	Category     string
	Due          string
	ReminderType model.ReminderType
}

// Target names a task by its 1-based position in the current view or by id.
type Target string

// Index returns the 0-based view position when the target is numeric.
func (t Target) Index() (int, bool) {
	n, err := strconv.Atoi(string(t))
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

type TargetArgs struct {
	Target Target
}

type EditArgs struct {
	Target Target
	Title  string
}

type DueArgs struct {
	Target Target
	// Due is empty when the due date should be cleared.
	Due string
}

type RemindArgs struct {
	Target       Target
	ReminderType model.ReminderType
}

type NoteArgs struct {
	Target Target
	Notes  string
}

type FilterArgs struct {
	Name string
}

type CategoryArgs struct {
	Remove bool
	Name   string
	Color  string
}

type MoveArgs struct {
	Moved  Target
	Target Target
}

type SnoozeArgs struct {
	Target  Target
	Minutes int
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Task     *TargetArgs
	Edit     *EditArgs
	Due      *DueArgs
	Remind   *RemindArgs
	Note     *NoteArgs
	Filter   *FilterArgs
	Category *CategoryArgs
	Move     *MoveArgs
	Snooze   *SnoozeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, "toggle":
		return parseTarget(input, TypeDone, args)
	case TypeRemove, "delete":
		return parseTarget(input, TypeRemove, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeRemind:
		return parseRemind(input, args)
	case TypeNote:
		return parseNote(input, raw)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeCategory, "category":
		return parseCategory(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeSnooze:
		return parseSnooze(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	var words []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(arg, "!") && len(arg) > 1:
			p, err := model.ParsePriority(arg[1:])
			if err != nil {
				return Command{}, invalid("unknown priority %q", arg[1:])
			}
			out.Priority = p
		case strings.HasPrefix(arg, "#") && len(arg) > 1:
			out.Category = arg[1:]
		case strings.HasPrefix(lower, "due:"):
			out.Due = arg[len("due:"):]
		case strings.HasPrefix(lower, "remind:"):
			rt, err := model.ParseReminderType(arg[len("remind:"):])
			if err != nil {
				return Command{}, invalid("unknown reminder type %q", arg[len("remind:"):])
			}
			out.ReminderType = rt
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task number or id", typ)
	}
	return Command{Type: typ, Raw: raw, Task: &TargetArgs{Target: Target(args[0])}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("edit requires a task and a new title")
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Target: Target(args[0]), Title: strings.Join(args[1:], " ")}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("due requires a task and a date (or none)")
	}
	due := args[1]
	if strings.EqualFold(due, "none") || due == "-" {
		due = ""
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Target: Target(args[0]), Due: due}}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("remind requires a task and a reminder type")
	}
	rt, err := model.ParseReminderType(args[1])
	if err != nil {
		return Command{}, invalid("unknown reminder type %q", args[1])
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Target: Target(args[0]), ReminderType: rt}}, nil
}

// parseNote keeps the note text verbatim after the target.
func parseNote(raw, body string) (Command, error) {
	rest := strings.TrimSpace(body[len(TypeNote):])
	target, notes, _ := strings.Cut(rest, " ")
	if target == "" {
		return Command{}, invalid("note requires a task")
	}
	notes = strings.ReplaceAll(strings.TrimSpace(notes), `\n`, "\n")
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Target: Target(target), Notes: notes}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("filter requires a name")
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Name: strings.Join(args, " ")}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("usage: cat add <name> [color] | cat rm <name>")
	}
	switch strings.ToLower(args[0]) {
	case "add":
		out := CategoryArgs{Name: args[1]}
		if len(args) > 2 {
			out.Color = args[2]
		}
		return Command{Type: TypeCategory, Raw: raw, Category: &out}, nil
	case "rm", "delete":
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Remove: true, Name: strings.Join(args[1:], " ")}}, nil
	default:
		return Command{}, invalid("unknown category action %q", args[0])
	}
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("move requires a task and a destination task")
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Moved: Target(args[0]), Target: Target(args[1])}}, nil
}

func parseSnooze(raw string, args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return Command{}, invalid("snooze requires a task and optional minutes")
	}
	out := SnoozeArgs{Target: Target(args[0])}
	if len(args) == 2 {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[1]), "m"))
		if err != nil || n <= 0 {
			return Command{}, invalid("snooze minutes must be a positive number, got %q", args[1])
		}
		out.Minutes = n
	}
	return Command{Type: TypeSnooze, Raw: raw, Snooze: &out}, nil
}

// ParseDue accepts today, tomorrow, +Nd, YYYY-MM-DD and YYYY-MM-DD HH:MM
// (or YYYY-MM-DDTHH:MM). Dates without a time resolve to the start of the day
// in now's location.
func ParseDue(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	loc := now.Location()
	today := model.StartOfDay(now, loc)
	switch raw {
	case "":
		return time.Time{}, invalid("empty due date")
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	if strings.HasPrefix(raw, "+") && strings.HasSuffix(raw, "d") {
		n, err := strconv.Atoi(raw[1 : len(raw)-1])
		if err != nil || n < 0 {
			return time.Time{}, invalid("bad relative date %q", raw)
		}
		return today.AddDate(0, 0, n), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02t15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("unrecognised date %q", raw)
}
