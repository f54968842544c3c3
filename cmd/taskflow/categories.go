package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func categoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories",
	}

	var color string
	add := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.store.AddCategory(cmd.Context(), strings.Join(args, " "), color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added category %s %s\n", c.ID, c.Name)
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "display colour (ANSI number or #rrggbb)")

	rm := &cobra.Command{
		Use:   "rm <name...>",
		Short: "Delete a category and clear it from its tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			name := strings.Join(args, " ")
			c, ok := model.FindCategoryByName(st.Categories, name)
			if !ok {
				c, ok = model.FindCategory(st.Categories, name)
			}
			if !ok {
				return fmt.Errorf("unknown category %q", name)
			}
			if _, err := a.store.DeleteCategory(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted category %s\n", c.Name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.store.State(cmd.Context())
			if err != nil {
				return err
			}
			if len(st.Categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no categories)")
				return nil
			}
			for _, c := range st.Categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.ID, c.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(add, rm, list)
	return cmd
}
