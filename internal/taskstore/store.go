// Package taskstore owns the canonical task, category and reminder
// collections. Every mutation is a transform of the latest committed state
// applied atomically through the storage repository; subscribers are told
// about each committed change.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/taskflow/internal/clock"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/query"
	"github.com/sandeepkv93/taskflow/internal/reorder"
	"github.com/sandeepkv93/taskflow/internal/scheduler"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var (
	ErrEmptyTitle        = errors.New("taskstore: task title is required")
	ErrEmptyCategoryName = errors.New("taskstore: category name is required")
	ErrDuplicateCategory = errors.New("taskstore: duplicate category")
)

type NewTask struct {
	Title        string
	Category     string
	Priority     model.Priority
	DueDate      *time.Time
	Notes        string
	ReminderType model.ReminderType
}

// TaskPatch holds the fields to merge into a task; nil fields are left alone.
// ClearDueDate removes the due date and, with it, the reminder.
type TaskPatch struct {
	Title        *string
	Completed    *bool
	Category     *string
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
	Notes        *string
	ReminderType *model.ReminderType
}

type Options struct {
	Clock clock.Clock
	IDs   IDGenerator
}

type Store struct {
	repo  storage.Repository
	clock clock.Clock
	ids   IDGenerator
	cache query.Cache

	mu       sync.Mutex
	revision uint64
	subs     map[int]func(State)
	nextSub  int
}

func New(repo storage.Repository, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	return &Store{
		repo:  repo,
		clock: opts.Clock,
		ids:   opts.IDs,
		subs:  make(map[int]func(State)),
	}
}

func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// State loads and hydrates the latest committed state.
func (s *Store) State(ctx context.Context) (State, error) {
	// Read the revision first: a commit racing with the load can then only
	// pair newer data with an older revision, which the next call corrects.
	rev := s.currentRevision()
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}
	st := Hydrate(snap)
	st.Revision = rev
	return st, nil
}

// View derives the visible tasks and statistics for filter from the latest
// committed state.
func (s *Store) View(ctx context.Context, filter query.Filter) (query.View, State, error) {
	st, err := s.State(ctx)
	if err != nil {
		return query.View{}, State{}, err
	}
	return s.cache.Get(st.Tasks, filter, s.clock.Now()), st, nil
}

// Subscribe registers fn to run after every committed change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) AddTask(ctx context.Context, in NewTask) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	priority := in.Priority.OrDefault()
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, in.Priority)
	}
	reminderType := in.ReminderType
	if reminderType == "" || in.DueDate == nil {
		reminderType = model.ReminderNone
	}
	if !reminderType.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidReminderType, in.ReminderType)
	}

	var created model.Task
	_, err := s.mutate(ctx, func(st *State) (bool, error) {
		maxOrder := 0
		for _, t := range st.Tasks {
			if t.Order > maxOrder {
				maxOrder = t.Order
			}
		}
		created = model.Task{
			ID:           s.ids.NewID(),
			Title:        title,
			Category:     knownCategory(st.Categories, in.Category),
			CreatedAt:    s.clock.Now(),
			Order:        maxOrder + 1,
			Priority:     priority,
			Notes:        in.Notes,
			ReminderType: reminderType,
		}
		if in.DueDate != nil {
			due := *in.DueDate
			created.DueDate = &due
		}
		st.Tasks = append(st.Tasks, created)
		st.Reminders = scheduler.Derive(st.Reminders, created, s.ids.NewID)
		return true, nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// ToggleTask flips completion. Completing removes the task's reminder;
// reopening re-arms it when the reminder time is still ahead.
func (s *Store) ToggleTask(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(st *State) (bool, error) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return false, nil
		}
		st.Tasks[i].Completed = !st.Tasks[i].Completed
		s.syncReminder(st, st.Tasks[i], false)
		return true, nil
	})
}

// DeleteTask removes the task and its reminder.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(st *State) (bool, error) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return false, nil
		}
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
		st.Reminders, _ = scheduler.Remove(st.Reminders, id)
		return true, nil
	})
}

// UpdateTask merges patch into the task. A blank title is ignored. Setting a
// due date or reminder type re-derives the reminder; clearing the due date
// forces the reminder type to none.
func (s *Store) UpdateTask(ctx context.Context, id string, patch TaskPatch) (bool, error) {
	if patch.Priority != nil && !patch.Priority.OrDefault().IsValid() {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidPriority, *patch.Priority)
	}
	if patch.ReminderType != nil && *patch.ReminderType != "" && !patch.ReminderType.IsValid() {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidReminderType, *patch.ReminderType)
	}
	return s.mutate(ctx, func(st *State) (bool, error) {
		i := indexOf(st.Tasks, id)
		if i < 0 {
			return false, nil
		}
		t := st.Tasks[i]
		rederive := false
		if patch.Title != nil {
			if title := strings.TrimSpace(*patch.Title); title != "" {
				t.Title = title
			}
		}
		if patch.Completed != nil && *patch.Completed != t.Completed {
			t.Completed = *patch.Completed
			rederive = true
		}
		if patch.Category != nil {
			t.Category = knownCategory(st.Categories, *patch.Category)
		}
		if patch.Priority != nil {
			t.Priority = patch.Priority.OrDefault()
		}
		if patch.Notes != nil {
			t.Notes = *patch.Notes
		}
		if patch.DueDate != nil {
			due := *patch.DueDate
			t.DueDate = &due
			rederive = true
		}
		if patch.ClearDueDate {
			t.DueDate = nil
			rederive = true
		}
		if patch.ReminderType != nil {
			t.ReminderType = *patch.ReminderType
			rederive = true
		}
		if t.ReminderType == "" || t.DueDate == nil {
			t.ReminderType = model.ReminderNone
		}
		st.Tasks[i] = t
		if rederive {
			s.syncReminder(st, t, true)
		}
		return true, nil
	})
}

func (s *Store) AddCategory(ctx context.Context, name, color string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrEmptyCategoryName
	}
	var created model.Category
	_, err := s.mutate(ctx, func(st *State) (bool, error) {
		if existing, ok := model.FindCategoryByName(st.Categories, name); ok {
			return false, fmt.Errorf("%w: %q", ErrDuplicateCategory, existing.Name)
		}
		created = model.Category{ID: s.ids.NewID(), Name: name, Color: strings.TrimSpace(color)}
		st.Categories = append(st.Categories, created)
		return true, nil
	})
	if err != nil {
		return model.Category{}, err
	}
	return created, nil
}

// DeleteCategory removes the category and clears it from every task that
// referenced it.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, func(st *State) (bool, error) {
		kept := make([]model.Category, 0, len(st.Categories))
		for _, c := range st.Categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(st.Categories) {
			return false, nil
		}
		st.Categories = kept
		for i := range st.Tasks {
			if st.Tasks[i].Category == id {
				st.Tasks[i].Category = ""
			}
		}
		return true, nil
	})
}

// Reorder moves movedID to targetID's position within filter's view.
func (s *Store) Reorder(ctx context.Context, filter query.Filter, movedID, targetID string) (bool, error) {
	return s.mutate(ctx, func(st *State) (bool, error) {
		next, ok := reorder.Move(st.Tasks, filter, s.clock.Now(), movedID, targetID)
		if !ok {
			return false, nil
		}
		st.Tasks = next
		return true, nil
	})
}

// SnoozeReminder defers a reminder by minutes (the default when <= 0).
func (s *Store) SnoozeReminder(ctx context.Context, reminderID string, minutes int) (bool, error) {
	return s.mutate(ctx, func(st *State) (bool, error) {
		next, ok := scheduler.Snooze(st.Reminders, reminderID, s.clock.Now(), minutes)
		if !ok {
			return false, nil
		}
		st.Reminders = next
		return true, nil
	})
}

// ScanReminders drops stale reminders and fires the due ones in a single
// atomic update. Nothing is written when nothing changed.
func (s *Store) ScanReminders(ctx context.Context, now time.Time) ([]scheduler.Due, error) {
	var fired []scheduler.Due
	_, err := s.mutate(ctx, func(st *State) (bool, error) {
		reconciled, removed := scheduler.Reconcile(st.Tasks, st.Reminders)
		next, due, triggered := scheduler.ScanDue(now, st.Tasks, reconciled)
		fired = due
		if !st.pruned && !removed && !triggered {
			return false, nil
		}
		st.Reminders = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return fired, nil
}

func (s *Store) mutate(ctx context.Context, fn func(*State) (bool, error)) (bool, error) {
	var (
		next    State
		changed bool
	)
	_, err := s.repo.Update(ctx, func(snap *storage.Snapshot) error {
		st := Hydrate(*snap)
		ok, err := fn(&st)
		if err != nil {
			return err
		}
		changed = ok
		if !ok {
			return nil
		}
		*snap = Dehydrate(st)
		next = st
		return nil
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.publish(next)
	}
	return changed, nil
}

func (s *Store) publish(st State) {
	s.mu.Lock()
	s.revision++
	st.Revision = s.revision
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

func (s *Store) currentRevision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// syncReminder keeps the task's reminder consistent with its state. force
// re-derives even if the reminder time has passed.
func (s *Store) syncReminder(st *State, t model.Task, force bool) {
	if t.Completed || !t.HasReminder() {
		st.Reminders, _ = scheduler.Remove(st.Reminders, t.ID)
		return
	}
	if !force && !scheduler.ReminderTime(*t.DueDate, t.ReminderType).After(s.clock.Now()) {
		return
	}
	st.Reminders = scheduler.Derive(st.Reminders, t, s.ids.NewID)
}

func indexOf(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func knownCategory(categories []model.Category, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if _, ok := model.FindCategory(categories, id); ok {
		return id
	}
	return ""
}
