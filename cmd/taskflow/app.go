package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/config"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/storage"
	"github.com/sandeepkv93/taskflow/internal/taskstore"
	"github.com/sandeepkv93/taskflow/internal/update"
)

const memoryDB = ":memory:"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	dbPath     string

	cfg   config.Config
	repo  storage.Repository
	store *taskstore.Store
}

func (a *app) open(ctx context.Context) error {
	path, err := config.ResolveConfigPath(a.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p := strings.TrimSpace(a.dbPath); p != "" {
		cfg.DBPath = p
	}
	a.cfg = cfg

	if cfg.DBPath == memoryDB {
		a.repo = storage.NewMemoryRepository(storage.Snapshot{})
	} else {
		repo, err := storage.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		a.repo = repo
	}
	a.store = taskstore.New(a.repo, taskstore.Options{})
	return nil
}

func (a *app) close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

func (a *app) sink(onError func(error)) scheduler.Sink {
	if !a.cfg.DesktopNotifications {
		return nil
	}
	return notify.Sink{Notifier: notify.NewDesktop(), OnError: onError}
}

func (a *app) runTUI(ctx context.Context) error {
	var program *tea.Program
	reportErr := func(err error) {
		if program != nil {
			go program.Send(update.AppErrorMsg{Err: err})
		}
	}
	engine := scheduler.NewEngine(a.store, scheduler.EngineConfig{
		Interval: a.cfg.Interval(),
		Buffer:   a.cfg.EventBuffer,
		Sink:     a.sink(reportErr),
		OnError:  reportErr,
	})

	st, err := a.store.State(ctx)
	if err != nil {
		return err
	}
	m := update.NewModel(a.store, update.Options{
		Engine:        engine,
		Filter:        query.ParseFilter(a.cfg.DefaultFilter, st.Categories),
		SnoozeMinutes: a.cfg.SnoozeMinutes,
	})
	program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Subscribers run inside the committing call, which may be the TUI's own
	// Update; Send must not block it.
	unsubscribe := a.store.Subscribe(func(taskstore.State) {
		go program.Send(update.StateChangedMsg{})
	})
	defer unsubscribe()

	engine.Start(ctx)
	defer engine.Stop()

	if _, err := program.Run(); err != nil {
		return err
	}
	if n := engine.Dropped(); n > 0 {
		fmt.Fprintf(os.Stderr, "taskflow: %d reminder event(s) dropped\n", n)
	}
	return nil
}
