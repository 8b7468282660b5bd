package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// Retriever finds document chunks relevant to a user message.
type Retriever interface {
	// SearchSimilarChunks embeds the query once and ranks every embedded
	// chunk in the knowledge base against it. An embedding failure yields
	// an empty result, not an error: a chat request must never block on
	// missing context.
	SearchSimilarChunks(ctx context.Context, query string, topK int) ([]domain.ScoreResult[domain.Chunk], error)
}
