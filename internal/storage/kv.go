// Package storage persists weatherdo state in a local key-value store.
//
// Values are opaque strings. The State type layers JSON encoding and the
// well-known keys on top of a KV backend; it performs no validation.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Backends lists the selectable backends.
var Backends = []Backend{BackendFile, BackendSQLite, BackendMemory}

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// ParseBackend parses a backend name. An empty string yields BackendFile.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendFile, nil
	case BackendFile, BackendSQLite, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("invalid store backend %q, must be one of: file, sqlite, memory", s)
}

// Open opens the KV backend at path. The memory backend ignores path.
func Open(backend Backend, path string) (KV, error) {
	switch backend {
	case BackendFile, "":
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
