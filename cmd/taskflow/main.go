package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "taskflow failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Personal task tracker with reminders",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskflow/config.toml)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path, or :memory: for a throwaway store")

	root.AddCommand(addCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(statsCmd(a))
	root.AddCommand(doneCmd(a))
	root.AddCommand(removeCmd(a))
	root.AddCommand(editCmd(a))
	root.AddCommand(moveCmd(a))
	root.AddCommand(categoryCmd(a))
	root.AddCommand(remindCmd(a))
	return root
}
