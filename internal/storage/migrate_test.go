package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(context.Background(), db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	if _, err := repo.Update(context.Background(), func(s *Snapshot) error {
		s.Tasks = append(s.Tasks, Task{ID: "task-rt-1", Title: "Roundtrip task", CreatedAt: 1})
		return nil
	}); err != nil {
		t.Fatalf("write after roundtrip failed: %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].Title != "Roundtrip task" {
		t.Fatalf("unexpected tasks after roundtrip: %#v", got.Tasks)
	}
}
