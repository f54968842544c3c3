package storage

import (
	"context"
	"sync"
)

// MemoryRepository keeps the snapshot in process; used by tests and --db=:memory:.
type MemoryRepository struct {
	mu     sync.Mutex
	snap   Snapshot
	writes int
	closed bool
}

func NewMemoryRepository(seed Snapshot) *MemoryRepository {
	return &MemoryRepository{snap: seed.Clone()}
}

func (r *MemoryRepository) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Snapshot{}, ErrClosed
	}
	return r.snap.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, fn func(*Snapshot) error) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Snapshot{}, ErrClosed
	}
	next := r.snap.Clone()
	if err := fn(&next); err != nil {
		return Snapshot{}, err
	}
	before, err := encodeSnapshot(r.snap)
	if err != nil {
		return Snapshot{}, err
	}
	after, err := encodeSnapshot(next)
	if err != nil {
		return Snapshot{}, err
	}
	for key := range after {
		if string(before[key]) != string(after[key]) {
			r.writes++
		}
	}
	r.snap = next
	return next.Clone(), nil
}

// Writes counts key writes that changed a stored value.
func (r *MemoryRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *MemoryRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
