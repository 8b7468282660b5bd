package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// RetrievalService ranks document chunks against a user message.
// Retrieval is global across the whole knowledge base; there is no
// per-document filtering at this layer.
type RetrievalService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewRetrievalService creates a retrieval service. The embedder is
// optional; without it every query degrades to "no context available".
func NewRetrievalService(docStore driven.DocumentStore, embedder driven.EmbeddingService) *RetrievalService {
	return &RetrievalService{
		docStore: docStore,
		embedder: embedder,
	}
}

// SearchSimilarChunks embeds the query once and ranks every embedded
// chunk against it. Embedding failures degrade to an empty result so the
// underlying chat request is never blocked.
func (s *RetrievalService) SearchSimilarChunks(
	ctx context.Context, query string, topK int,
) ([]domain.ScoreResult[domain.Chunk], error) {
	logger.Section("RAG Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Blank query, returning no results")
		return nil, nil
	}
	if s.embedder == nil {
		logger.Debug("No embedding provider, returning no results")
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed, degrading to no context: %v", err)
		return nil, nil
	}
	logger.Debug("Query embedding: %d dimensions", len(queryVec))

	chunks, err := s.docStore.ListEmbeddedChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list embedded chunks: %w", err)
	}
	logger.Debug("Candidates: %d embedded chunks", len(chunks))

	results := FindSimilar(query, queryVec, chunks, topK)
	logger.Info("Retrieved %d/%d chunks for query", len(results), len(chunks))
	return results, nil
}
