package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// RetrieveInput is the input schema for the retrieve_context tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the user message to find relevant context for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve_context tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput represents a single retrieved chunk.
type ChunkOutput struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}

// MemorySearchInput is the input schema for the search_memory tool.
type MemorySearchInput struct {
	Query      string `json:"query" jsonschema:"the message to find relevant facts for"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of facts to return (default 5)"`
	MinAgeDays *int   `json:"min_age_days,omitempty" jsonschema:"exclude facts younger than this many days (default 2)"`
}

// MemorySearchOutput is the output schema for the search_memory tool.
type MemorySearchOutput struct {
	Facts []FactOutput `json:"facts"`
	Count int          `json:"count"`
}

// FactOutput represents a single memory fact.
type FactOutput struct {
	ID        string `json:"id"`
	Fact      string `json:"fact"`
	CreatedAt string `json:"created_at"`
}

// RememberInput is the input schema for the remember tool.
type RememberInput struct {
	Fact           string `json:"fact" jsonschema:"the fact to store, e.g. 'prefers metric units'"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"conversation the fact came from"`
	MessageID      string `json:"message_id,omitempty" jsonschema:"message the fact was extracted from"`
}

// RememberOutput is the output schema for the remember tool.
type RememberOutput struct {
	ID string `json:"id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve the document chunks most relevant to a message",
	}, s.handleRetrieve)

	if s.ports.Memory != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_memory",
			Description: "Find long-term memory facts relevant to a message",
		}, s.handleMemorySearch)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "remember",
			Description: "Store a fact about the user for future conversations",
		}, s.handleRemember)
	}
}

// handleRetrieve handles the retrieve_context tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultRAGLimit
	}
	limit = domain.ClampResultLimit(limit)

	results, err := s.ports.Retriever.SearchSimilarChunks(ctx, input.Query, limit)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]ChunkOutput, len(results)),
		Count:  len(results),
	}
	for i := range results {
		output.Chunks[i] = ChunkOutput{
			ChunkID:    results[i].Item.ID,
			DocumentID: results[i].Item.DocumentID,
			ChunkIndex: results[i].Item.ChunkIndex,
			Content:    results[i].Item.Content,
			Score:      results[i].Score,
		}
	}

	return nil, output, nil
}

// handleMemorySearch handles the search_memory tool invocation.
func (s *Server) handleMemorySearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MemorySearchInput,
) (*mcp.CallToolResult, MemorySearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultMemoryLimit
	}
	limit = domain.ClampResultLimit(limit)
	minAge := domain.DefaultMemoryMinAgeDays
	if input.MinAgeDays != nil {
		minAge = domain.ClampMemoryMinAge(*input.MinAgeDays)
	}

	entries, err := s.ports.Memory.FindSimilarMemories(ctx, input.Query, limit, minAge)
	if err != nil {
		return nil, MemorySearchOutput{}, err
	}

	output := MemorySearchOutput{
		Facts: make([]FactOutput, len(entries)),
		Count: len(entries),
	}
	for i := range entries {
		output.Facts[i] = FactOutput{
			ID:        entries[i].ID,
			Fact:      entries[i].Fact,
			CreatedAt: entries[i].CreatedAt.Format("2006-01-02"),
		}
	}

	return nil, output, nil
}

// handleRemember handles the remember tool invocation.
func (s *Server) handleRemember(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RememberInput,
) (*mcp.CallToolResult, RememberOutput, error) {
	entry, err := s.ports.Memory.Remember(ctx, input.ConversationID, input.MessageID, input.Fact)
	if err != nil {
		return nil, RememberOutput{}, err
	}
	return nil, RememberOutput{ID: entry.ID}, nil
}
