package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteRepository stores each logical key as one JSON row in the kv table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	// Immediate transactions take the write lock up front so two read-modify-write
	// updates cannot interleave.
	db, err := sql.Open("sqlite3", "file:"+path+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) (Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv WHERE key IN (?, ?, ?)`, KeyTasks, KeyCategories, KeyReminders)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()
	_, snap, err := scanSnapshot(rows)
	return snap, err
}

func (r *SQLiteRepository) Update(ctx context.Context, fn func(*Snapshot) error) (Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT key, value FROM kv WHERE key IN (?, ?, ?)`, KeyTasks, KeyCategories, KeyReminders)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	before, snap, err := scanSnapshot(rows)
	rows.Close()
	if err != nil {
		return Snapshot{}, err
	}

	if err := fn(&snap); err != nil {
		return Snapshot{}, err
	}

	after, err := encodeSnapshot(snap)
	if err != nil {
		return Snapshot{}, err
	}
	now := time.Now().UTC().Format(sqliteTimeLayout)
	for _, key := range []string{KeyTasks, KeyCategories, KeyReminders} {
		if bytes.Equal(before[key], after[key]) {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, string(after[key]), now,
		); err != nil {
			return Snapshot{}, fmt.Errorf("write %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit update: %w", err)
	}
	return snap, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSnapshot(rows rowScanner) (map[string][]byte, Snapshot, error) {
	raw := make(map[string][]byte, 3)
	var snap Snapshot
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, Snapshot{}, err
		}
		raw[key] = []byte(value)
		if err := decodeKey(key, raw[key], &snap); err != nil {
			return nil, Snapshot{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, Snapshot{}, err
	}
	return raw, snap, nil
}
