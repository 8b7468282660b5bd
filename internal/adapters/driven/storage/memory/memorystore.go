package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure MemoryStore implements the interface.
var _ driven.MemoryStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of driven.MemoryStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.MemoryEntry
}

// NewMemoryStore creates a new in-memory memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]domain.MemoryEntry),
	}
}

// Save stores or updates a memory entry.
func (s *MemoryStore) Save(_ context.Context, entry *domain.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = *entry
	return nil
}

// Get retrieves an entry by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns all non-archived entries, oldest first.
func (s *MemoryStore) List(_ context.Context) ([]domain.MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.MemoryEntry, 0, len(s.entries))
	for id := range s.entries {
		if !s.entries[id].IsArchived {
			result = append(result, s.entries[id])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateEmbedding persists a regenerated embedding, leaving other fields
// untouched.
func (s *MemoryStore) UpdateEmbedding(_ context.Context, id string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.Embedding = embedding
	s.entries[id] = entry
	return nil
}

// Archive soft-deletes an entry.
func (s *MemoryStore) Archive(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	entry.IsArchived = true
	s.entries[id] = entry
	return nil
}
