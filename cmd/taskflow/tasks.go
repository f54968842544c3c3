package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/taskstore"
)

func addCmd(a *app) *cobra.Command {
	var (
		priority string
		category string
		due      string
		remind   string
		notes    string
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := taskstore.NewTask{Title: strings.Join(args, " "), Notes: notes}
			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			in.Priority = p
			rt, err := model.ParseReminderType(remind)
			if err != nil {
				return err
			}
			in.ReminderType = rt
			if category != "" {
				st, err := a.store.State(cmd.Context())
				if err != nil {
					return err
				}
				c, ok := model.FindCategoryByName(st.Categories, category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				in.Category = c.ID
			}
			if due != "" {
				d, err := commands.ParseDue(due, a.store.Now())
				if err != nil {
					return err
				}
				in.DueDate = &d
			}
			t, err := a.store.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", t.ID, t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "high, medium or low")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date: today, tomorrow, +Nd, YYYY-MM-DD[ HH:MM]")
	cmd.Flags().StringVarP(&remind, "remind", "r", "", "reminder lead time, e.g. 1hour or 1day")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "markdown notes")
	return cmd
}

func listCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks under a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			f := query.ParseFilter(filter, st.Categories)
			v, st, err := a.store.View(cmd.Context(), f)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), v.Tasks, st.Categories, a.store.Now())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "filter name or category (default from config)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("filter") {
			filter = a.cfg.DefaultFilter
		}
	}
	return cmd
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := a.store.View(cmd.Context(), query.FilterAll)
			if err != nil {
				return err
			}
			s := v.Stats
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "total:      %d\n", s.Total)
			fmt.Fprintf(w, "completed:  %d\n", s.Completed)
			fmt.Fprintf(w, "pending:    %d\n", s.Pending)
			fmt.Fprintf(w, "high/med/low: %d/%d/%d\n", s.High, s.Medium, s.Low)
			fmt.Fprintf(w, "overdue:    %d\n", s.Overdue)
			fmt.Fprintf(w, "due today:  %d\n", s.DueToday)
			fmt.Fprintf(w, "no due:     %d\n", s.NoDueDate)
			fmt.Fprintf(w, "reminders:  %d\n", s.WithReminders)
			return nil
		},
	}
}

func doneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.store.ToggleTask(cmd.Context(), args[0])
			return report(cmd.OutOrStdout(), found, err, "toggled", args[0])
		},
	}
}

func removeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.store.DeleteTask(cmd.Context(), args[0])
			return report(cmd.OutOrStdout(), found, err, "deleted", args[0])
		},
	}
}

func editCmd(a *app) *cobra.Command {
	var (
		title    string
		priority string
		due      string
		remind   string
		notes    string
		category string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch taskstore.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("priority") {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("due") {
				if strings.EqualFold(due, "none") || due == "" {
					patch.ClearDueDate = true
				} else {
					d, err := commands.ParseDue(due, a.store.Now())
					if err != nil {
						return err
					}
					patch.DueDate = &d
				}
			}
			if flags.Changed("remind") {
				rt, err := model.ParseReminderType(remind)
				if err != nil {
					return err
				}
				patch.ReminderType = &rt
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			if flags.Changed("category") {
				id := ""
				if category != "" {
					st, err := a.store.State(cmd.Context())
					if err != nil {
						return err
					}
					c, ok := model.FindCategoryByName(st.Categories, category)
					if !ok {
						return fmt.Errorf("unknown category %q", category)
					}
					id = c.ID
				}
				patch.Category = &id
			}
			found, err := a.store.UpdateTask(cmd.Context(), args[0], patch)
			return report(cmd.OutOrStdout(), found, err, "updated", args[0])
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low")
	cmd.Flags().StringVarP(&due, "due", "d", "", "due date, or none to clear")
	cmd.Flags().StringVarP(&remind, "remind", "r", "", "reminder lead time, or none")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "markdown notes")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name, empty to clear")
	return cmd
}

func moveCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "move <id> <target-id>",
		Short: "Move a task to another task's position within a filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			f := query.ParseFilter(filter, st.Categories)
			found, err := a.store.Reorder(cmd.Context(), f, args[0], args[1])
			return report(cmd.OutOrStdout(), found, err, "moved", args[0])
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter the positions are taken from")
	return cmd
}

func report(w io.Writer, found bool, err error, verb, id string) error {
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("task %s not found", id)
	}
	fmt.Fprintf(w, "%s %s\n", verb, id)
	return nil
}

func printTasks(w io.Writer, tasks []model.Task, categories []model.Category, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %-6s %s", t.ID, box, t.Priority, t.Title)
		if c, ok := model.FindCategory(categories, t.Category); ok {
			line += " #" + c.Name
		}
		if t.DueDate != nil {
			line += " due:" + model.DueLabel(*t.DueDate, now)
			if t.IsOverdue(now) {
				line += " OVERDUE"
			}
		}
		if t.HasReminder() {
			line += " remind:" + string(t.ReminderType)
		}
		fmt.Fprintln(w, line)
	}
}
