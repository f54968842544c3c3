package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func TestFromReminderLabelsDueDay(t *testing.T) {
	due := time.Date(2026, 10, 18, 14, 30, 0, 0, time.Local)
	task := model.Task{ID: "t1", Title: "Dentist", DueDate: &due}
	r := model.Reminder{TaskID: "t1", ReminderTime: due.Add(-24 * time.Hour)}

	n := FromReminder(task, r, r.ReminderTime)
	if n.Title != "Dentist" {
		t.Fatalf("unexpected title %q", n.Title)
	}
	if n.Body != "Due Tomorrow at 14:30" {
		t.Fatalf("unexpected body %q", n.Body)
	}
}

func TestFromReminderLabelsAgainstFireTime(t *testing.T) {
	due := time.Date(2026, 10, 18, 14, 30, 0, 0, time.Local)
	task := model.Task{ID: "t1", Title: "Dentist", DueDate: &due}
	r := model.Reminder{TaskID: "t1", ReminderTime: due.Add(-24 * time.Hour)}

	firedAt := due.Add(-2 * time.Hour)
	n := FromReminder(task, r, firedAt)
	if n.Body != "Due Today at 14:30" {
		t.Fatalf("snoozed reminder should label against fire time, got %q", n.Body)
	}
	if !n.At.Equal(firedAt) {
		t.Fatalf("unexpected At %s", n.At)
	}
}

func TestDesktopCommands(t *testing.T) {
	var got []string
	run := func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}
	n := Notification{Title: `say "hi"`, Body: "body"}

	if err := (Desktop{run: run, goos: "linux"}).Send(n); err != nil {
		t.Fatalf("linux send: %v", err)
	}
	if got[0] != "notify-send" || got[1] != n.Title || got[2] != "body" {
		t.Fatalf("unexpected linux command %v", got)
	}

	if err := (Desktop{run: run, goos: "darwin"}).Send(n); err != nil {
		t.Fatalf("darwin send: %v", err)
	}
	if got[0] != "osascript" || !strings.Contains(got[2], `with title "say \"hi\""`) {
		t.Fatalf("unexpected darwin command %v", got)
	}

	got = nil
	if err := (Desktop{run: run, goos: "plan9"}).Send(n); err != nil || got != nil {
		t.Fatalf("expected unsupported platform to be skipped, got %v %v", got, err)
	}
}

func TestSinkReportsErrors(t *testing.T) {
	var reported error
	boom := errors.New("boom")
	s := Sink{
		Notifier: Fanout{Noop{}, Func(func(Notification) error { return boom })},
		OnError:  func(err error) { reported = err },
	}
	s.Notify(model.Task{ID: "t1", Title: "x"}, model.Reminder{}, time.Now())
	if !errors.Is(reported, boom) {
		t.Fatalf("expected wrapped boom, got %v", reported)
	}
}
