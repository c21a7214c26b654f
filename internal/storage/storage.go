package storage

import (
	"sync"

	"github.com/eugenenazirov/webui-harness/internal/properties"
)

// Store is the mapping a property handle reads from and writes to.
type Store interface {
	Lookup(key string) (string, bool)
	Set(key, value string)
}

var _ Store = properties.Properties(nil)

// MemoryStore keeps the merged property mapping in memory and guards access
// with a RWMutex. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	props properties.Properties
}

// NewMemoryStore initialises the store with a copy of initial.
func NewMemoryStore(initial properties.Properties) *MemoryStore {
	return &MemoryStore{
		props: initial.Clone(),
	}
}

// Lookup returns the value stored for key and whether it is present.
func (s *MemoryStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.props[key]
	return v, ok
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	s.props[key] = value
	s.mu.Unlock()
}

// Snapshot returns a defensive copy of the current mapping.
func (s *MemoryStore) Snapshot() properties.Properties {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.props.Clone()
}

// Replace swaps the whole mapping for a copy of props.
func (s *MemoryStore) Replace(props properties.Properties) {
	next := props.Clone()

	s.mu.Lock()
	s.props = next
	s.mu.Unlock()
}

// Update replaces the mapping with the result of fn while holding the write
// lock. fn receives a copy and may return it modified.
func (s *MemoryStore) Update(fn func(current properties.Properties) properties.Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.props.Clone())
	if next == nil {
		next = properties.Properties{}
	}
	s.props = next
}

// Len reports the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.props)
}
