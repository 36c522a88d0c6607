package savedstate

import (
	"sort"
	"sync"
	"time"

	"github.com/muurk/uistate/internal/uistate"
)

// Store holds one snapshot per key.
type Store interface {
	// Load returns the snapshot saved under key.
	Load(key string) (uistate.Snapshot, bool)

	// Save replaces the snapshot under key.
	Save(key string, snap uistate.Snapshot)

	// Delete drops the snapshot under key.
	Delete(key string)

	// Flush persists pending changes. A no-op for in-memory stores.
	Flush() error
}

// Entry is one saved snapshot.
type Entry struct {
	Values  uistate.Snapshot `yaml:"values"`
	SavedAt time.Time        `yaml:"saved_at"`
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Load implements Store
func (m *MemoryStore) Load(key string) (uistate.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return e.Values.Clone(), true
}

// Save implements Store
func (m *MemoryStore) Save(key string, snap uistate.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Values: snap.Clone(), SavedAt: m.now()}
}

// Delete implements Store
func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Flush implements Store
func (m *MemoryStore) Flush() error { return nil }

// Keys returns the saved keys, sorted.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry returns the saved entry under key, including when it was saved.
func (m *MemoryStore) Entry(key string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, false
	}
	e.Values = e.Values.Clone()
	return e, true
}
