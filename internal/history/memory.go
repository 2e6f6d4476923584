package history

import (
	"sync"

	"github.com/embrylab/blastograde/internal/models"
)

// MemoryStore is a bounded in-memory history list. A single mutex guards
// the append-and-truncate sequence, since it reads then conditionally
// evicts non-atomically.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	entries  []models.Analysis
}

// NewMemoryStore creates a MemoryStore with the given capacity. A
// non-positive capacity falls back to DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity}
}

// Append adds an analysis, evicting the oldest entry when full.
func (s *MemoryStore) Append(a models.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, a)
	if len(s.entries) > s.capacity {
		// Copy down rather than reslice so evicted records are freed.
		copy(s.entries, s.entries[len(s.entries)-s.capacity:])
		s.entries = s.entries[:s.capacity]
	}
	return nil
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
func (s *MemoryStore) Recent(n int) ([]models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]models.Analysis, n)
	for i := 0; i < n; i++ {
		out[i] = s.entries[len(s.entries)-1-i]
	}
	return out, nil
}

// Get returns the analysis with the given ID.
func (s *MemoryStore) Get(id string) (*models.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			a := s.entries[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Clear drops every entry.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Len reports the current number of entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
