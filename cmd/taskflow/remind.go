package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
)

func remindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Work with reminders",
	}

	scan := &cobra.Command{
		Use:   "scan",
		Short: "Fire due reminders once and drop stale ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			engine := scheduler.NewEngine(a.store, scheduler.EngineConfig{
				Buffer: a.cfg.EventBuffer,
				Sink: a.sink(func(err error) {
					fmt.Fprintf(os.Stderr, "taskflow: %v\n", err)
				}),
			})
			defer engine.Stop()
			n, err := engine.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			engine.Stop()
			for ev := range engine.C() {
				fmt.Fprintf(out, "reminder %s: %s\n", ev.Reminder.ID, ev.Task.Title)
			}
			if dropped := engine.Dropped(); dropped > 0 {
				fmt.Fprintf(out, "%d more not shown\n", dropped)
			}
			if n == 0 {
				fmt.Fprintln(out, "no reminders due")
			}
			return nil
		},
	}

	var minutes int
	snooze := &cobra.Command{
		Use:   "snooze <task-id>",
		Short: "Snooze a task's reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			r, ok := scheduler.ForTask(st.Reminders, args[0])
			if !ok {
				return fmt.Errorf("task %s has no reminder", args[0])
			}
			if minutes <= 0 {
				minutes = a.cfg.SnoozeMinutes
			}
			if _, err := a.store.SnoozeReminder(cmd.Context(), r.ID, minutes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snoozed %s for %d min\n", args[0], minutes)
			return nil
		},
	}
	snooze.Flags().IntVarP(&minutes, "minutes", "m", 0, "minutes to snooze (default from config)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			now := a.store.Now()
			if len(st.Reminders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no reminders)")
				return nil
			}
			for _, r := range st.Reminders {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s at %s [%s]\n", r.TaskID, r.Type, r.ReminderTime.Format("2006-01-02 15:04"), reminderState(r, now))
			}
			return nil
		},
	}

	cmd.AddCommand(scan, snooze, list)
	return cmd
}

func reminderState(r model.Reminder, now time.Time) string {
	switch {
	case r.Snoozed(now):
		return "snoozed until " + r.SnoozedUntil.Format("15:04")
	case r.Triggered:
		return "fired"
	case r.Due(now):
		return "due"
	default:
		return "pending"
	}
}
