package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// MemoryStore persists long-term memory facts.
type MemoryStore interface {
	// Save stores or updates a memory entry.
	Save(ctx context.Context, entry *domain.MemoryEntry) error

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.MemoryEntry, error)

	// List returns all non-archived entries.
	List(ctx context.Context) ([]domain.MemoryEntry, error)

	// UpdateEmbedding persists a regenerated embedding for an entry.
	// Used by lazy backfill and bulk re-embedding; other fields are
	// left untouched.
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error

	// Archive soft-deletes an entry.
	Archive(ctx context.Context, id string) error
}
