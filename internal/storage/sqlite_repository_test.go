package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "taskflow-test.db")
	repo, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestLoadEmptyDatabase(t *testing.T) {
	repo := setupRepo(t)
	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Tasks) != 0 || len(snap.Categories) != 0 || len(snap.Reminders) != 0 {
		t.Fatalf("expected empty snapshot, got %#v", snap)
	}
}

func TestUpdatePersistsAllKeys(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, func(s *Snapshot) error {
		s.Categories = append(s.Categories, Category{ID: "cat-1", Name: "Home", Color: "#ff0000"})
		s.Tasks = append(s.Tasks, Task{
			ID:           "task-1",
			Title:        "Pay rent",
			Category:     "cat-1",
			CreatedAt:    1760000000000,
			Order:        intPtr(1),
			Priority:     "high",
			DueDate:      int64Ptr(1760100000000),
			Notes:        "**by wire**",
			ReminderType: "1day",
		})
		s.Reminders = append(s.Reminders, Reminder{
			ID:           "rem-1",
			TaskID:       "task-1",
			ReminderTime: 1760013600000,
			Type:         "1day",
		})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Priority != "high" || *got.Tasks[0].DueDate != 1760100000000 {
		t.Fatalf("unexpected tasks: %#v", got.Tasks)
	}
	if len(got.Categories) != 1 || got.Categories[0].Color != "#ff0000" {
		t.Fatalf("unexpected categories: %#v", got.Categories)
	}
	if len(got.Reminders) != 1 || got.Reminders[0].TaskID != "task-1" {
		t.Fatalf("unexpected reminders: %#v", got.Reminders)
	}
}

func TestUpdateErrorLeavesStateUntouched(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repo.Update(ctx, func(s *Snapshot) error {
		s.Tasks = append(s.Tasks, Task{ID: "task-1", Title: "ghost"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != 0 {
		t.Fatalf("expected no tasks after failed update, got %#v", got.Tasks)
	}
}

func TestLegacyRecordsKeepOptionalFieldsAbsent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if _, err := repo.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		KeyTasks, `[{"id":"old","title":"legacy","completed":false,"category":"","createdAt":5}]`, "2026-01-01T00:00:00Z"); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("expected 1 legacy task, got %d", len(got.Tasks))
	}
	if got.Tasks[0].Order != nil || got.Tasks[0].Priority != "" {
		t.Fatalf("legacy optional fields should stay absent: %#v", got.Tasks[0])
	}
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		i := i
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, func(s *Snapshot) error {
				s.Tasks = append(s.Tasks, Task{ID: fmt.Sprintf("task-%d", i), Title: "t"})
				return nil
			})
			if err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != writers {
		t.Fatalf("expected %d tasks, got %d", writers, len(got.Tasks))
	}
}
