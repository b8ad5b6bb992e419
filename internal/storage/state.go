package storage

import (
	"encoding/json"
	"fmt"

	"github.com/nibzard/weatherdo/internal/todo"
)

// Well-known keys.
const (
	KeyUser          = "user"
	KeyAuthenticated = "isAuthenticated"
	KeyTodos         = "todos"
)

// State reads and writes JSON values on top of a KV backend.
// It implements todo.Persister.
type State struct {
	kv KV
}

var _ todo.Persister = (*State)(nil)

// NewState wraps kv.
func NewState(kv KV) *State {
	return &State{kv: kv}
}

// OpenState opens the backend at path and wraps it.
func OpenState(backend Backend, path string) (*State, error) {
	kv, err := Open(backend, path)
	if err != nil {
		return nil, err
	}
	return NewState(kv), nil
}

// Raw returns the stored string for key.
func (s *State) Raw(key string) (string, bool, error) {
	return s.kv.Get(key)
}

// LoadJSON decodes the value at key into v. It reports false, leaving v
// untouched, when the key is absent.
func (s *State) LoadJSON(key string, v any) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it at key.
func (s *State) SaveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(key, string(data))
}

// Remove deletes key.
func (s *State) Remove(key string) error {
	return s.kv.Delete(key)
}

// LoadFlag reads a boolean stored as "true" or "false". Absent means false.
func (s *State) LoadFlag(key string) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	return raw == "true", nil
}

// SaveFlag stores v as "true" or "false".
func (s *State) SaveFlag(key string, v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	return s.kv.Set(key, value)
}

// LoadTodos returns the persisted task collection. An absent key is an empty list.
func (s *State) LoadTodos() ([]todo.Task, error) {
	var tasks []todo.Task
	if _, err := s.LoadJSON(KeyTodos, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

// SaveTodos stores the full task collection.
func (s *State) SaveTodos(tasks []todo.Task) error {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return s.SaveJSON(KeyTodos, tasks)
}

// Close closes the backend.
func (s *State) Close() error {
	return s.kv.Close()
}
