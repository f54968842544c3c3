package query

import (
	"strings"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Filter selects the visible tasks. Any value that is not one of the named
// filters is treated as a category id.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
	FilterOverdue   Filter = "overdue"
	FilterToday     Filter = "today"
	FilterNoDueDate Filter = "no-due-date"
)

// Builtin lists the named filters in display order.
func Builtin() []Filter {
	return []Filter{
		FilterAll, FilterPending, FilterCompleted,
		FilterOverdue, FilterToday, FilterNoDueDate,
		FilterHigh, FilterMedium, FilterLow,
	}
}

func (f Filter) IsBuiltin() bool {
	for _, b := range Builtin() {
		if f == b {
			return true
		}
	}
	return false
}

// CategoryID returns the category a non-builtin filter refers to.
func (f Filter) CategoryID() (string, bool) {
	if f == "" || f.IsBuiltin() {
		return "", false
	}
	return string(f), true
}

// ParseFilter resolves user input: a builtin name, a category name, or a
// category id. Unknown input falls back to all.
func ParseFilter(raw string, categories []model.Category) Filter {
	v := strings.TrimSpace(raw)
	if v == "" {
		return FilterAll
	}
	lower := Filter(strings.ToLower(v))
	if lower.IsBuiltin() {
		return lower
	}
	if c, ok := model.FindCategoryByName(categories, v); ok {
		return Filter(c.ID)
	}
	if c, ok := model.FindCategory(categories, v); ok {
		return Filter(c.ID)
	}
	return FilterAll
}
