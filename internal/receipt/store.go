package receipt

import "sync"

// Store maps receipt identifiers to computed points. Records are write-once:
// there is no update or delete. Implementations must be safe for concurrent
// use; an Insert for an id happens-before any Lookup that observes it.
type Store interface {
	// Insert adds a new record. The caller guarantees the id is fresh.
	Insert(id string, points int) error

	// Lookup returns the points for an id, or ErrNotFound.
	Lookup(id string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore is the default Store: a mutex-guarded in-process map with no
// persistence across restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]int),
	}
}

// Insert adds a record to the map.
func (m *MemoryStore) Insert(id string, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = points
	return nil
}

// Lookup retrieves the points for an id.
func (m *MemoryStore) Lookup(id string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	points, ok := m.records[id]
	if !ok {
		return 0, ErrNotFound
	}
	return points, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
