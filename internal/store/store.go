// ABOUTME: Key/value store interface backing the persisted client session
// ABOUTME: Defines the KV contract and an in-memory implementation for tests and ephemeral runs

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested key does not exist
var ErrNotFound = errors.New("not found")

// KV is a string key/value store. It plays the role local storage plays for
// a browser client: a single process-wide place where the session lives.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Timestamper is implemented by stores that record when each key last
// changed. SQLiteStore and Sealed over a SQLiteStore implement it.
type Timestamper interface {
	// UpdatedAt returns when key was last changed, or ErrNotFound.
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// MemoryStore is a KV held in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Ensure both implementations satisfy KV.
var (
	_ KV = (*MemoryStore)(nil)
	_ KV = (*SQLiteStore)(nil)
)
