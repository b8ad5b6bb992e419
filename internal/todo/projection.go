package todo

import (
	"fmt"
	"slices"
	"strings"
)

// Filter selects which tasks a projection keeps.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// SortKey selects the order of a projection.
type SortKey string

const (
	SortNewestFirst       SortKey = "newest"
	SortOldestFirst       SortKey = "oldest"
	SortPriorityHighFirst SortKey = "priority-high"
	SortPriorityLowFirst  SortKey = "priority-low"
)

// SortKeys lists the sort keys in display order.
var SortKeys = []SortKey{SortNewestFirst, SortOldestFirst, SortPriorityHighFirst, SortPriorityLowFirst}

// Default view selection.
const (
	DefaultFilter  = FilterAll
	DefaultSortKey = SortNewestFirst
)

// Keep reports whether task passes the filter. Unknown filters keep everything.
func (f Filter) Keep(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// Next returns the sort key after k, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Label returns a human-readable name for the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortNewestFirst:
		return "Newest First"
	case SortOldestFirst:
		return "Oldest First"
	case SortPriorityHighFirst:
		return "Highest Priority"
	case SortPriorityLowFirst:
		return "Lowest Priority"
	}
	return string(k)
}

// ParseFilter parses a filter name. An empty string yields DefaultFilter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultFilter, nil
	case "all":
		return FilterAll, nil
	case "active", "open", "todo":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return "", fmt.Errorf("invalid filter %q, must be one of: all, active, completed", s)
}

// ParseSortKey parses a sort key name. An empty string yields DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultSortKey, nil
	case "newest", "date-desc":
		return SortNewestFirst, nil
	case "oldest", "date-asc":
		return SortOldestFirst, nil
	case "priority-high", "priority":
		return SortPriorityHighFirst, nil
	case "priority-low":
		return SortPriorityLowFirst, nil
	}
	return "", fmt.Errorf("invalid sort %q, must be one of: newest, oldest, priority-high, priority-low", s)
}

// Project returns the tasks kept by filter, ordered by key. The input slice is
// never modified. Sorting is stable, so ties keep their original relative order.
// Unknown sort keys keep insertion order.
func Project(tasks []Task, filter Filter, key SortKey) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Keep(t) {
			out = append(out, t)
		}
	}

	switch key {
	case SortNewestFirst:
		slices.SortStableFunc(out, func(a, b Task) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortOldestFirst:
		slices.SortStableFunc(out, func(a, b Task) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortPriorityHighFirst:
		slices.SortStableFunc(out, func(a, b Task) int { return b.Priority.Rank() - a.Priority.Rank() })
	case SortPriorityLowFirst:
		slices.SortStableFunc(out, func(a, b Task) int { return a.Priority.Rank() - b.Priority.Rank() })
	}
	return out
}
