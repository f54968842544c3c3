package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

type cli struct {
	t      *testing.T
	config string
	db     string
}

func newCLI(t *testing.T) cli {
	dir := t.TempDir()
	t.Setenv("TASKFLOW_DESKTOP_NOTIFICATIONS", "false")
	return cli{t: t, config: filepath.Join(dir, "config.toml"), db: filepath.Join(dir, "tasks.db")}
}

func (c cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", c.config, "--db", c.db}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("taskflow %v: %v\n%s", args, err, out)
	}
	return out
}

func idFrom(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	if len(fields) < 2 {
		t.Fatalf("unexpected output %q", out)
	}
	return fields[1]
}

func TestCLITaskLifecycle(t *testing.T) {
	c := newCLI(t)
	c.mustRun("category", "add", "Work")
	milk := idFrom(t, c.mustRun("add", "Buy", "milk"))
	dentist := idFrom(t, c.mustRun("add", "Call dentist", "-p", "high", "-c", "work", "-d", "+3d", "-r", "1day"))

	out := c.mustRun("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], dentist) || !strings.HasPrefix(lines[1], milk) {
		t.Fatalf("unexpected list order:\n%s", out)
	}
	if !strings.Contains(lines[0], "#Work") || !strings.Contains(lines[0], "remind:1day") {
		t.Fatalf("missing decorations:\n%s", out)
	}

	c.mustRun("done", milk)
	out = c.mustRun("list", "-f", "pending")
	if strings.Contains(out, milk) {
		t.Fatalf("completed task listed as pending:\n%s", out)
	}

	out = c.mustRun("stats")
	if !strings.Contains(out, "total:      2") || !strings.Contains(out, "completed:  1") {
		t.Fatalf("unexpected stats:\n%s", out)
	}

	out = c.mustRun("remind", "list")
	if !strings.Contains(out, dentist) || !strings.Contains(out, "pending") {
		t.Fatalf("unexpected reminders:\n%s", out)
	}
	out = c.mustRun("remind", "scan")
	if !strings.Contains(out, "no reminders due") {
		t.Fatalf("reminder fired too early:\n%s", out)
	}

	c.mustRun("edit", dentist, "--due", "none")
	out = c.mustRun("remind", "list")
	if !strings.Contains(out, "(no reminders)") {
		t.Fatalf("clearing the due date should drop the reminder:\n%s", out)
	}

	c.mustRun("category", "rm", "work")
	out = c.mustRun("list")
	if strings.Contains(out, "#Work") {
		t.Fatalf("category should be cleared from tasks:\n%s", out)
	}

	c.mustRun("rm", milk)
	if _, err := c.run("done", milk); err == nil {
		t.Fatal("expected error for missing task")
	}
}

func TestCLIRejectsInvalidInput(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{"add", " "},
		{"add", "x", "-p", "urgent"},
		{"add", "x", "-r", "5min"},
		{"add", "x", "-c", "missing"},
		{"add", "x", "-d", "someday"},
	} {
		if _, err := c.run(args...); err == nil {
			t.Fatalf("expected %v to fail", args)
		}
	}
	c.mustRun("category", "add", "Home")
	if _, err := c.run("category", "add", "HOME"); err == nil {
		t.Fatal("expected duplicate category to fail")
	}
}

func TestCLIMemoryDatabase(t *testing.T) {
	c := newCLI(t)
	c.db = memoryDB
	out := c.mustRun("add", "scratch")
	if !strings.Contains(out, "added") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := c.mustRun("list"); !strings.Contains(out, "(no tasks)") {
		t.Fatalf("memory store should not persist across runs:\n%s", out)
	}
}
