// Package statestore owns the canonical persisted questionnaire record: a
// single versioned JSON blob behind a synchronous string key-value medium.
package statestore

import "sync"

// KV is the persistent string key-value medium. It mirrors the contract of
// a browser localStorage: synchronous get/set/remove on string values.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any prior value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// MemoryKV is an in-process KV, used in tests and throwaway sessions.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// NoopKV is the medium for execution contexts without persistent storage:
// reads always miss and writes are accepted and discarded. Callers built on
// it fall back to a fresh catalog load for every query.
type NoopKV struct{}

func (NoopKV) Get(string) (string, bool, error) { return "", false, nil }
func (NoopKV) Set(string, string) error         { return nil }
func (NoopKV) Remove(string) error              { return nil }
