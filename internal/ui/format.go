package ui

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

// CreatedLayout is the display format for task creation times.
const CreatedLayout = "Jan 2, 2006, 03:04 PM"

// InvalidDate is shown for missing timestamps.
const InvalidDate = "Invalid date"

// FormatCreated renders t in local time, or InvalidDate for the zero time.
func FormatCreated(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.Local().Format(CreatedLayout)
}

// PriorityLabel returns a title-cased priority name such as "High".
func PriorityLabel(p todo.Priority) string {
	if p == "" {
		return ""
	}
	return title(string(p))
}

// FormatWeather renders a reading as "Sunny, 21°C".
func FormatWeather(r *weather.Reading) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s°C", r.Condition, strconv.FormatFloat(r.Temperature, 'f', -1, 64))
}

// Checkbox renders the completed state.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// EmptyListMessage is shown when the filter leaves no tasks.
func EmptyListMessage(filter todo.Filter, total int) string {
	if total == 0 {
		return "No tasks yet. Add a new task to get started!"
	}
	if filter == todo.FilterAll {
		return "No tasks found."
	}
	return fmt.Sprintf("No %s tasks found.", filter)
}

// FilterLabel returns a title-cased filter name such as "Active".
func FilterLabel(f todo.Filter) string {
	return title(string(f))
}

// title upper-cases the first letter of s. A Caser keeps state between
// calls, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
