// Package localstore is the client-side durable key/value port backing
// the pending-action stores. Values are untrusted on read; consumers
// must validate shape before use.
package localstore

import "sync"

// Store is the storage port: the minimal get/set/remove surface the
// pending stores need, so they can be tested without a real backing file.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set writes the value for key, overwriting any prior entry.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
