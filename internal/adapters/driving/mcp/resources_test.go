package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func readRequest(uri string) *sdk.ReadResourceRequest {
	req := &sdk.ReadResourceRequest{}
	req.Params = &sdk.ReadResourceParams{URI: uri}
	return req
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists documents as json", func(t *testing.T) {
		ingestor := &mockIngestor{
			documents: []domain.Document{
				{ID: "doc-1", Name: "notes.txt", ChunkCount: 4, IsProcessed: true},
				{ID: "doc-2", Name: "draft.md"},
			},
		}
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, readRequest(uriScheme+"documents"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "doc-1", infos[0]["id"])
		assert.Equal(t, float64(4), infos[0]["chunk_count"])
		assert.Equal(t, false, infos[1]["processed"])
	})

	t.Run("missing ingestor yields empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, readRequest(uriScheme+"documents"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored content", func(t *testing.T) {
		ingestor := &mockIngestor{
			document: &domain.Document{ID: "doc-1", Content: "the full text"},
		}
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, readRequest(uriScheme+"documents/doc-1"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "the full text", result.Contents[0].Text)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: &mockIngestor{}})
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, readRequest(uriScheme+"chunks/abc"))
		assert.Error(t, err)
	})
}

func TestServer_handleStatusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("reports live status", func(t *testing.T) {
		ingestor := &mockIngestor{
			status: domain.ProcessingStatus{
				State:      domain.StateProcessing,
				DocumentID: "doc-1",
				Progress:   40,
				Step:       "embedding chunk 2/5",
			},
		}
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, readRequest(uriScheme+"status"))
		require.NoError(t, err)

		var info map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.Equal(t, "processing", info["state"])
		assert.Equal(t, float64(40), info["progress"])
	})

	t.Run("missing ingestor reports idle", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}})
		require.NoError(t, err)

		result, err := server.handleStatusResource(ctx, readRequest(uriScheme+"status"))
		require.NoError(t, err)

		var info map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.Equal(t, "idle", info["state"])
	})
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "doc-1", extractDocumentID(uriScheme+"documents/doc-1"))
	assert.Equal(t, "", extractDocumentID(uriScheme+"documents"))
	assert.Equal(t, "", extractDocumentID("file:///tmp/doc-1"))
}
