package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/nibzard/weatherdo/internal/todo"
	"github.com/nibzard/weatherdo/internal/weather"
)

func TestFormatCreated(t *testing.T) {
	if got := FormatCreated(time.Time{}); got != InvalidDate {
		t.Errorf("zero time = %q, want %q", got, InvalidDate)
	}
	ts := time.Date(2024, 7, 4, 15, 5, 0, 0, time.Local)
	if got, want := FormatCreated(ts), "Jul 4, 2024, 03:05 PM"; got != want {
		t.Errorf("FormatCreated = %q, want %q", got, want)
	}
}

func TestFormatWeather(t *testing.T) {
	tests := []struct {
		name string
		in   *weather.Reading
		want string
	}{
		{"nil", nil, ""},
		{"integer", &weather.Reading{Condition: "Sunny", Temperature: 21}, "Sunny, 21°C"},
		{"fraction", &weather.Reading{Condition: "Clouds", Temperature: 18.5}, "Clouds, 18.5°C"},
		{"negative", &weather.Reading{Condition: "Snowy", Temperature: -3}, "Snowy, -3°C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWeather(tt.in); got != tt.want {
				t.Errorf("FormatWeather = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	if got := PriorityLabel(todo.PriorityHigh); got != "High" {
		t.Errorf("PriorityLabel = %q", got)
	}
	if got := PriorityLabel(""); got != "" {
		t.Errorf("PriorityLabel(\"\") = %q", got)
	}
	if got := FilterLabel(todo.FilterCompleted); got != "Completed" {
		t.Errorf("FilterLabel = %q", got)
	}
	if Checkbox(true) != "[x]" || Checkbox(false) != "[ ]" {
		t.Error("Checkbox rendering changed")
	}
}

func TestLabelsConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := PriorityLabel(todo.PriorityLow); got != "Low" {
					t.Errorf("PriorityLabel = %q", got)
					return
				}
				if got := FilterLabel(todo.FilterActive); got != "Active" {
					t.Errorf("FilterLabel = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEmptyListMessage(t *testing.T) {
	tests := []struct {
		filter todo.Filter
		total  int
		want   string
	}{
		{todo.FilterAll, 0, "No tasks yet. Add a new task to get started!"},
		{todo.FilterActive, 0, "No tasks yet. Add a new task to get started!"},
		{todo.FilterActive, 2, "No active tasks found."},
		{todo.FilterCompleted, 1, "No completed tasks found."},
		{todo.FilterAll, 1, "No tasks found."},
	}
	for _, tt := range tests {
		if got := EmptyListMessage(tt.filter, tt.total); got != tt.want {
			t.Errorf("EmptyListMessage(%q, %d) = %q, want %q", tt.filter, tt.total, got, tt.want)
		}
	}
}
