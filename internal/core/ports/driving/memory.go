package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// MemoryService manages long-term memory facts and their retrieval.
type MemoryService interface {
	// Remember stores a new fact with its embedding.
	Remember(ctx context.Context, conversationID, messageID, fact string) (*domain.MemoryEntry, error)

	// FindSimilarMemories returns up to limit facts relevant to the query,
	// excluding entries younger than minAgeDays. Entries lacking a stored
	// embedding are backfilled on demand.
	FindSimilarMemories(ctx context.Context, query string, limit, minAgeDays int) ([]domain.MemoryEntry, error)

	// List returns all non-archived facts.
	List(ctx context.Context) ([]domain.MemoryEntry, error)

	// Archive soft-deletes a fact.
	Archive(ctx context.Context, id string) error

	// ReembedAll regenerates every fact's embedding with the active model.
	// Progress reports (current, total); entries whose regeneration fails
	// keep their previous embedding and are counted in the result.
	ReembedAll(ctx context.Context, progress func(current, total int)) (ReembedResult, error)
}

// ReembedResult summarises a bulk re-embedding run.
type ReembedResult struct {
	// Total is the number of entries visited.
	Total int

	// Processed is the number of entries whose embedding was replaced.
	Processed int

	// Failed is the number of entries left with their previous embedding.
	Failed int
}
