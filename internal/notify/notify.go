// Package notify delivers fired reminders outside the TUI.
package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

// FromReminder builds the user-facing message for a reminder fired at now.
func FromReminder(task model.Task, r model.Reminder, now time.Time) Notification {
	body := "Reminder"
	if task.DueDate != nil {
		body = fmt.Sprintf("Due %s", model.DueLabel(*task.DueDate, now))
		if !task.DueDate.Equal(model.StartOfDay(*task.DueDate, task.DueDate.Location())) {
			body += " at " + task.DueDate.Format("15:04")
		}
	}
	return Notification{Title: task.Title, Body: body, At: now}
}

type Notifier interface {
	Send(Notification) error
}

type Noop struct{}

func (Noop) Send(Notification) error { return nil }

// Desktop shells out to notify-send on Linux and osascript on macOS. Other
// platforms are silently skipped.
type Desktop struct {
	// run is swapped in tests.
	run func(name string, args ...string) error
	goos string
}

func NewDesktop() Desktop {
	return Desktop{run: runCommand, goos: runtime.GOOS}
}

func (d Desktop) Send(n Notification) error {
	run := d.run
	if run == nil {
		run = runCommand
	}
	goos := d.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux":
		return run("notify-send", n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return run("osascript", "-e", script)
	default:
		return nil
	}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Sink adapts a Notifier to the scheduler engine. Errors go to OnError when
// set and are otherwise dropped.
type Sink struct {
	Notifier Notifier
	OnError  func(error)
}

func (s Sink) Notify(task model.Task, r model.Reminder, firedAt time.Time) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Send(FromReminder(task, r, firedAt)); err != nil && s.OnError != nil {
		s.OnError(fmt.Errorf("notify %s: %w", task.ID, err))
	}
}

// Fanout sends to every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) Send(n Notification) error {
	var errs []error
	for _, nt := range f {
		if err := nt.Send(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func lets a plain function act as a Notifier.
type Func func(Notification) error

func (f Func) Send(n Notification) error { return f(n) }
