package query

import (
	"sync"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Cache memoizes the last derived view by (tasks, filter, calendar day).
// Tasks are compared by value, so a change committed by another process is
// seen as soon as the caller reloads. The day is part of the key because
// overdue/today shift at midnight.
type Cache struct {
	mu     sync.Mutex
	tasks  []model.Task
	filter Filter
	day    time.Time
	view   View
	valid  bool
	hits   int
}

func (c *Cache) Get(tasks []model.Task, filter Filter, now time.Time) View {
	day := model.StartOfDay(now, now.Location())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.filter == filter && c.day.Equal(day) && sameTasks(c.tasks, tasks) {
		c.hits++
		return c.view
	}
	c.view = Derive(tasks, filter, now)
	c.tasks = append(c.tasks[:0:0], tasks...)
	c.filter = filter
	c.day = day
	c.valid = true
	return c.view
}

func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func sameTasks(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameTask(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameTask(a, b model.Task) bool {
	if a.ID != b.ID || a.Title != b.Title || a.Completed != b.Completed ||
		a.Category != b.Category || a.Order != b.Order || a.Priority != b.Priority ||
		a.Notes != b.Notes || a.ReminderType != b.ReminderType || !a.CreatedAt.Equal(b.CreatedAt) {
		return false
	}
	if (a.DueDate == nil) != (b.DueDate == nil) {
		return false
	}
	return a.DueDate == nil || a.DueDate.Equal(*b.DueDate)
}
