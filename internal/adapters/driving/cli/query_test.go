package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestQueryCmd_Use(t *testing.T) {
	assert.Equal(t, "query [message]", queryCmd.Use)
}

func TestQueryCmd_RequiresMessage(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("query")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a message is required")
}

func TestQueryCmd_HasLimitFlag(t *testing.T) {
	flag := queryCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestQueryCmd_ErrorsWithoutService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = nil

	_, err := execute("query", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestQueryCmd_PrintsResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &mockRetriever{results: []domain.ScoreResult[domain.Chunk]{
		{
			Item:                domain.Chunk{ID: "c1", DocumentID: "d1", ChunkIndex: 0, Content: "lorem ipsum dolor"},
			Score:               0.87,
			EmbeddingSimilarity: 0.80,
			KeywordBoost:        0.05,
			ExactMatchBoost:     0.02,
		},
	}}
	ingestService = &mockIngestor{document: &domain.Document{ID: "d1", Name: "notes.md"}}

	out, err := execute("query", "lorem")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "notes.md")
	assert.Contains(t, out, "0.87")
	assert.Contains(t, out, "lorem ipsum dolor")
}

func TestQueryCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("query", "anything")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestQueryCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &mockRetriever{results: []domain.ScoreResult[domain.Chunk]{
		{
			Item:                domain.Chunk{ID: "c1", DocumentID: "d1", ChunkIndex: 1, Content: "content"},
			Score:               1.0,
			EmbeddingSimilarity: 0.9,
			KeywordBoost:        0.1,
			ExactMatchBoost:     0.1,
		},
	}}

	out, err := execute("query", "--json", "content")

	require.NoError(t, err)
	assert.Contains(t, out, `"chunk_id": "c1"`)
	assert.Contains(t, out, `"embedding_similarity": 0.9`)

	// Reset the sticky flag for later tests.
	queryJSON = false
}

func TestQueryCmd_PassesLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retriever := &mockRetriever{}
	retrievalService = retriever

	_, err := execute("query", "--limit", "3", "hello")

	require.NoError(t, err)
	assert.Equal(t, 3, retriever.lastTopK)
	queryLimit = domain.DefaultRAGLimit
}

func TestQueryCmd_ClampsOversizedLimit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retriever := &mockRetriever{}
	retrievalService = retriever

	_, err := execute("query", "--limit", "50", "hello")

	require.NoError(t, err)
	assert.Equal(t, domain.MaxResultLimit, retriever.lastTopK)
	queryLimit = domain.DefaultRAGLimit
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "a b c", snippet("a\n b\t c", 160))

	long := snippet("alpha beta gamma delta", 12)
	assert.Equal(t, "alpha beta...", long)
}
