package todo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/weather"
)

// Persister loads and saves the full task collection.
type Persister interface {
	LoadTodos() ([]Task, error)
	SaveTodos(tasks []Task) error
}

// Store is the in-memory task collection. It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	tasks   []Task
	persist Persister
	logger  *log.Logger
}

// NewStore creates a store initialized from p. A nil p keeps tasks in memory only.
func NewStore(p Persister, logger *log.Logger) (*Store, error) {
	s := &Store{
		persist: p,
		logger:  logging.OrDiscard(logger),
	}
	if p == nil {
		return s, nil
	}
	tasks, err := p.LoadTodos()
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	s.tasks = append([]Task(nil), tasks...)
	return s, nil
}

// save writes the collection. Callers must hold s.mu.
func (s *Store) save(op string) {
	if s.persist == nil {
		return
	}
	if err := s.persist.SaveTodos(s.snapshot()); err != nil {
		s.logger.Warn("save todos failed", "op", op, "err", err)
	}
}

// snapshot copies the collection. Callers must hold s.mu.
func (s *Store) snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends a task and persists the collection.
func (s *Store) Add(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "task_id", task.ID)
	s.save("add")
}

// ToggleCompleted flips the completed flag of the task with id.
// It reports whether the task exists; a missing id is a no-op.
func (s *Store) ToggleCompleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.save("toggle")
	return true
}

// Delete removes the task with id if present. The collection is persisted either way.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	s.save("delete")
	return i >= 0
}

// SetPriority changes the priority of the task with id.
// It reports whether the task exists; invalid priorities are rejected.
func (s *Store) SetPriority(id string, p Priority) bool {
	if !p.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Priority = p
	s.save("priority")
	return true
}

// ReplaceWeather replaces the stored record matching task.ID, typically after
// a weather refresh. The stored creation time is kept.
func (s *Store) ReplaceWeather(task Task) bool {
	if strings.TrimSpace(task.Text) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(task.ID)
	if i < 0 {
		return false
	}
	task.CreatedAt = s.tasks[i].CreatedAt
	s.tasks[i] = task
	s.save("replace")
	return true
}

// SetWeather swaps only the weather of the task with id, leaving fields
// changed since the lookup started untouched. It returns the updated task.
func (s *Store) SetWeather(id string, r *weather.Reading) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i].Weather = r
	s.save("weather")
	return s.tasks[i], true
}

// Clear removes every task and persists the empty collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.save("clear")
}

// Get returns the task with id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Resolve maps a full id or a unique id prefix to a full id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(ref); i >= 0 {
		return ref, nil
	}
	match := ""
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w %q", ErrAmbiguousID, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return match, nil
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Counts returns the number of active and completed tasks.
func (s *Store) Counts() (active, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// Close flushes the collection one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveTodos(s.snapshot()); err != nil {
		return fmt.Errorf("flush todos: %w", err)
	}
	return nil
}
