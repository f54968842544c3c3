package storage

// Records are persisted as JSON lists under the three logical keys. Times are
// epoch milliseconds. Order and Priority are optional because older records
// were written without them; hydration fills them in on load.

type Task struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Completed    bool   `json:"completed"`
	Category     string `json:"category"`
	CreatedAt    int64  `json:"createdAt"`
	Order        *int   `json:"order,omitempty"`
	Priority     string `json:"priority,omitempty"`
	DueDate      *int64 `json:"dueDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
	ReminderType string `json:"reminderType,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Reminder struct {
	ID           string `json:"id"`
	TaskID       string `json:"taskId"`
	ReminderTime int64  `json:"reminderTime"`
	Type         string `json:"type"`
	Triggered    bool   `json:"triggered"`
	SnoozedUntil *int64 `json:"snoozedUntil,omitempty"`
}

// Snapshot is the committed value of all three keys at one point in time.
type Snapshot struct {
	Tasks      []Task
	Categories []Category
	Reminders  []Reminder
}

func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Tasks:      make([]Task, len(s.Tasks)),
		Categories: make([]Category, len(s.Categories)),
		Reminders:  make([]Reminder, len(s.Reminders)),
	}
	for i, t := range s.Tasks {
		if t.Order != nil {
			v := *t.Order
			t.Order = &v
		}
		if t.DueDate != nil {
			v := *t.DueDate
			t.DueDate = &v
		}
		out.Tasks[i] = t
	}
	copy(out.Categories, s.Categories)
	for i, r := range s.Reminders {
		if r.SnoozedUntil != nil {
			v := *r.SnoozedUntil
			r.SnoozedUntil = &v
		}
		out.Reminders[i] = r
	}
	return out
}
