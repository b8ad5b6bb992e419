package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/weatherdo/internal/weather"
)

// Priority is a task's importance.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when none is given.
const DefaultPriority = PriorityMedium

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities: low=1, medium=2, high=3, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Next returns the priority after p, wrapping from high to low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// ParsePriority parses a priority name. An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{Path: "priority", Err: fmt.Errorf("%w %q, must be one of: %s", ErrInvalidPriority, s, priorityNames())}
	}
	return p, nil
}

func priorityNames() string {
	names := make([]string, len(Priorities))
	for i, p := range Priorities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// Task is a single to-do item.
type Task struct {
	ID        string           `json:"id" yaml:"id"`
	Text      string           `json:"text" yaml:"text"`
	Completed bool             `json:"completed" yaml:"completed"`
	Priority  Priority         `json:"priority" yaml:"priority"`
	CreatedAt time.Time        `json:"createdAt" yaml:"created_at"`
	Location  string           `json:"location,omitempty" yaml:"location,omitempty"`
	Weather   *weather.Reading `json:"weather,omitempty" yaml:"weather,omitempty"`
}

// HasLocation reports whether weather can be looked up for the task.
func (t *Task) HasLocation() bool {
	return strings.TrimSpace(t.Location) != ""
}

// ShortID returns the first 8 characters of the ID.
func (t *Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

var (
	// ErrEmptyText is returned when task text is empty after trimming.
	ErrEmptyText = errors.New("task text cannot be empty")
	// ErrInvalidPriority is returned for an unknown priority name.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrNotFound is returned when no task matches an id.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguousID is returned when an id prefix matches more than one task.
	ErrAmbiguousID = errors.New("ambiguous task id")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Field or JSON path of the offending value
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateText trims text and rejects it when nothing is left.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ValidationError{Path: "text", Err: ErrEmptyText}
	}
	return trimmed, nil
}
