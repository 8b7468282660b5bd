package mcp

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// mockRetriever is a mock implementation of driving.Retriever.
type mockRetriever struct {
	results   []domain.ScoreResult[domain.Chunk]
	err       error
	lastQuery string
	lastTopK  int
}

func (m *mockRetriever) SearchSimilarChunks(
	_ context.Context,
	query string,
	topK int,
) ([]domain.ScoreResult[domain.Chunk], error) {
	m.lastQuery = query
	m.lastTopK = topK
	return m.results, m.err
}

// mockMemory is a mock implementation of driving.MemoryService.
type mockMemory struct {
	entries    []domain.MemoryEntry
	entry      *domain.MemoryEntry
	err        error
	lastLimit  int
	lastMinAge int
}

func (m *mockMemory) Remember(_ context.Context, _, _, fact string) (*domain.MemoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.entry != nil {
		return m.entry, nil
	}
	return &domain.MemoryEntry{ID: "mem-1", Fact: fact}, nil
}

func (m *mockMemory) FindSimilarMemories(
	_ context.Context,
	_ string,
	limit int,
	minAgeDays int,
) ([]domain.MemoryEntry, error) {
	m.lastLimit = limit
	m.lastMinAge = minAgeDays
	return m.entries, m.err
}

func (m *mockMemory) List(_ context.Context) ([]domain.MemoryEntry, error) {
	return m.entries, m.err
}

func (m *mockMemory) Archive(_ context.Context, _ string) error {
	return m.err
}

func (m *mockMemory) ReembedAll(_ context.Context, _ func(int, int)) (driving.ReembedResult, error) {
	return driving.ReembedResult{}, m.err
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	documents []domain.Document
	document  *domain.Document
	status    domain.ProcessingStatus
	err       error
}

func (m *mockIngestor) Ingest(_ context.Context, name, content string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: "doc-1", Name: name, Content: content}, nil
}

func (m *mockIngestor) Reprocess(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIngestor) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockIngestor) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockIngestor) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIngestor) Status() domain.ProcessingStatus {
	return m.status
}

func (m *mockIngestor) Subscribe() <-chan domain.ProcessingStatus {
	return nil
}
