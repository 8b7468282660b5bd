package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure MemoryService implements the interface.
var _ driving.MemoryService = (*MemoryService)(nil)

// MemoryService manages long-term facts and their retrieval. The memory
// store is small compared to the RAG store, so entries without a vector
// are backfilled on demand during retrieval instead of being excluded.
type MemoryService struct {
	store    driven.MemoryStore
	embedder driven.EmbeddingService
}

// NewMemoryService creates a memory service.
func NewMemoryService(store driven.MemoryStore, embedder driven.EmbeddingService) *MemoryService {
	return &MemoryService{
		store:    store,
		embedder: embedder,
	}
}

// Remember stores a new fact. The embedding is computed at creation time
// and persisted for reuse; if generation fails the fact is stored without
// a vector and retrieval backfills it later.
func (s *MemoryService) Remember(
	ctx context.Context, conversationID, messageID, fact string,
) (*domain.MemoryEntry, error) {
	if fact == "" {
		return nil, domain.ErrInvalidInput
	}

	entry := &domain.MemoryEntry{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		MessageID:      messageID,
		Fact:           fact,
		CreatedAt:      time.Now(),
	}

	if s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, fact)
		if err != nil {
			logger.Warn("Embedding failed for new memory, storing without vector: %v", err)
		} else {
			entry.Embedding = embedding
		}
	}

	if err := s.store.Save(ctx, entry); err != nil {
		return nil, fmt.Errorf("save memory: %w", err)
	}
	logger.Debug("Remembered fact %s", entry.ID)
	return entry, nil
}

// FindSimilarMemories returns up to limit facts relevant to the query.
// The age filter is a hard pre-filter applied before any scoring, so a
// fact stated minutes ago never echoes straight back, however well it
// would score.
func (s *MemoryService) FindSimilarMemories(
	ctx context.Context, query string, limit, minAgeDays int,
) ([]domain.MemoryEntry, error) {
	logger.Section("Memory Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Blank query, returning no memories")
		return nil, nil
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}

	now := time.Now()
	aged := make([]domain.MemoryEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.AgeAtLeast(now, minAgeDays) {
			aged = append(aged, entry)
		}
	}
	logger.Debug("Age filter (>= %d days): %d/%d entries", minAgeDays, len(aged), len(entries))

	candidates, backfilled := s.backfillMissing(ctx, aged)
	if backfilled > 0 {
		logger.Info("Backfilled %d memory embeddings on demand", backfilled)
	}

	results := FindSimilar(query, queryVec, candidates, limit)
	memories := make([]domain.MemoryEntry, len(results))
	for i, r := range results {
		memories[i] = r.Item
	}
	logger.Info("Retrieved %d/%d memories", len(memories), len(candidates))
	return memories, nil
}

// backfillMissing generates embeddings for entries that lack one, or
// whose stored vector came from a model with different dimensionality.
// A failed attempt excludes the entry from this query only; it is not
// deleted or marked failed. Returns the scorable candidates and the
// number of backfills performed.
func (s *MemoryService) backfillMissing(
	ctx context.Context, entries []domain.MemoryEntry,
) ([]domain.MemoryEntry, int) {
	dims := s.embedder.Dimensions()
	candidates := make([]domain.MemoryEntry, 0, len(entries))
	backfilled := 0

	for _, entry := range entries {
		if entry.HasEmbedding() && len(entry.Embedding) == dims {
			candidates = append(candidates, entry)
			continue
		}

		embedding, err := s.embedder.Embed(ctx, entry.Fact)
		if err != nil {
			logger.Warn("Backfill failed for memory %s, excluded from this query: %v", entry.ID, err)
			continue
		}
		if err := s.store.UpdateEmbedding(ctx, entry.ID, embedding); err != nil {
			logger.Warn("Persisting backfilled embedding for %s failed: %v", entry.ID, err)
			continue
		}
		entry.Embedding = embedding
		candidates = append(candidates, entry)
		backfilled++
	}

	return candidates, backfilled
}

// List returns all non-archived facts.
func (s *MemoryService) List(ctx context.Context) ([]domain.MemoryEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memories: %w", err)
	}
	return entries, nil
}

// Archive soft-deletes a fact.
func (s *MemoryService) Archive(ctx context.Context, id string) error {
	if err := s.store.Archive(ctx, id); err != nil {
		return fmt.Errorf("archive memory: %w", err)
	}
	logger.Debug("Archived memory %s", id)
	return nil
}

// ReembedAll regenerates every fact's embedding with the active model.
// Used when the embedding model changes, since vectors from different
// models are not comparable. Entries whose regeneration fails keep their
// previous embedding untouched.
func (s *MemoryService) ReembedAll(
	ctx context.Context, progress func(current, total int),
) (driving.ReembedResult, error) {
	if s.embedder == nil {
		return driving.ReembedResult{}, domain.ErrEmbeddingUnavailable
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return driving.ReembedResult{}, fmt.Errorf("list memories: %w", err)
	}

	result := driving.ReembedResult{Total: len(entries)}
	logger.Section("Memory Re-embedding")
	logger.Info("Re-embedding %d memories with model %s", len(entries), s.embedder.ModelName())

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		embedding, err := s.embedder.Embed(ctx, entry.Fact)
		if err != nil {
			result.Failed++
			logger.Warn("Re-embed failed for %s, previous vector kept: %v", entry.ID, err)
		} else if err := s.store.UpdateEmbedding(ctx, entry.ID, embedding); err != nil {
			result.Failed++
			logger.Warn("Persisting re-embedded vector for %s failed: %v", entry.ID, err)
		} else {
			result.Processed++
		}

		if progress != nil {
			progress(i+1, len(entries))
		}
	}

	logger.Info("Re-embedding complete: %d processed, %d failed", result.Processed, result.Failed)
	return result, nil
}
