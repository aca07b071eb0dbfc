package catalog

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps named expressions in memory.
// It is suitable for tests and for hosts that load their formula set at
// startup.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	closed  bool
}

type memoryEntry struct {
	id        string
	source    string
	createdAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Save implements Store.
func (s *MemoryStore) Save(name, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	entry, exists := s.entries[name]
	if !exists {
		entry = memoryEntry{
			id:        uuid.NewString(),
			createdAt: time.Now().UTC(),
		}
	}
	entry.source = source
	s.entries[name] = entry
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	entry, ok := s.entries[name]
	if !ok {
		return "", ErrNotFound
	}
	return entry.source, nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(s.entries))
	for name, entry := range s.entries {
		infos = append(infos, Info{
			Name:      name,
			ID:        entry.id,
			CreatedAt: entry.createdAt,
			Size:      int64(len(entry.source)),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	delete(s.entries, name)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
