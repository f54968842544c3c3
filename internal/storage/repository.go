package storage

import (
	"context"
	"errors"
)

const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
	KeyReminders  = "reminders"
)

var ErrClosed = errors.New("storage: repository closed")

// Repository is a durable key-value store holding the tasks, categories and
// reminders lists. Update runs fn against the latest committed value and
// commits the result atomically; an error from fn discards every change.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Update(ctx context.Context, fn func(*Snapshot) error) (Snapshot, error)
	Close() error
}
