package todo

import (
	"errors"
	"sync"
	"time"
)

// memPersister records every save.
type memPersister struct {
	mu      sync.Mutex
	initial []Task
	loadErr error
	saveErr error
	saves   [][]Task
}

func (m *memPersister) LoadTodos() ([]Task, error) {
	return m.initial, m.loadErr
}

func (m *memPersister) SaveTodos(tasks []Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, tasks)
	return m.saveErr
}

func (m *memPersister) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *memPersister) last() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil
	}
	return m.saves[len(m.saves)-1]
}

var errDiskFull = errors.New("disk full")

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
