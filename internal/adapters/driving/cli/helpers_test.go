package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// mockIngestor is a configurable Ingestor test double.
type mockIngestor struct {
	documents []domain.Document
	document  *domain.Document
	err       error

	ingestedName    string
	ingestedContent string
	reprocessedID   string
	deletedID       string
}

func (m *mockIngestor) Ingest(_ context.Context, name, content string) (*domain.Document, error) {
	m.ingestedName = name
	m.ingestedContent = content
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{ID: "doc-1", Name: name, ChunkCount: 2, IsProcessed: true}, nil
}

func (m *mockIngestor) Reprocess(_ context.Context, documentID string) error {
	m.reprocessedID = documentID
	return m.err
}

func (m *mockIngestor) Delete(_ context.Context, documentID string) error {
	m.deletedID = documentID
	return m.err
}

func (m *mockIngestor) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.document == nil {
		return nil, domain.ErrNotFound
	}
	return m.document, nil
}

func (m *mockIngestor) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIngestor) Status() domain.ProcessingStatus {
	return domain.Idle()
}

func (m *mockIngestor) Subscribe() <-chan domain.ProcessingStatus {
	return make(chan domain.ProcessingStatus)
}

// mockRetriever is a configurable Retriever test double.
type mockRetriever struct {
	results  []domain.ScoreResult[domain.Chunk]
	err      error
	lastTopK int
}

func (m *mockRetriever) SearchSimilarChunks(_ context.Context, _ string, topK int) ([]domain.ScoreResult[domain.Chunk], error) {
	m.lastTopK = topK
	return m.results, m.err
}

// mockMemoryService is a configurable MemoryService test double.
type mockMemoryService struct {
	entries    []domain.MemoryEntry
	reembed    driving.ReembedResult
	err        error
	archivedID string
	lastLimit  int
	lastMinAge int
}

func (m *mockMemoryService) Remember(_ context.Context, conversationID, messageID, fact string) (*domain.MemoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MemoryEntry{
		ID:             "mem-1",
		ConversationID: conversationID,
		MessageID:      messageID,
		Fact:           fact,
		Embedding:      []float32{0.1},
		CreatedAt:      time.Now(),
	}, nil
}

func (m *mockMemoryService) FindSimilarMemories(_ context.Context, _ string, limit, minAgeDays int) ([]domain.MemoryEntry, error) {
	m.lastLimit = limit
	m.lastMinAge = minAgeDays
	return m.entries, m.err
}

func (m *mockMemoryService) List(_ context.Context) ([]domain.MemoryEntry, error) {
	return m.entries, m.err
}

func (m *mockMemoryService) Archive(_ context.Context, id string) error {
	m.archivedID = id
	return m.err
}

func (m *mockMemoryService) ReembedAll(_ context.Context, progress func(current, total int)) (driving.ReembedResult, error) {
	if progress != nil && m.reembed.Total > 0 {
		progress(m.reembed.Total, m.reembed.Total)
	}
	return m.reembed, m.err
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRetrieval := retrievalService
	oldMemory := memoryService
	oldConfig := configStore
	oldEmbedder := embedder

	ingestService = &mockIngestor{}
	retrievalService = &mockRetriever{}
	memoryService = &mockMemoryService{}
	configStore = memory.NewConfigStore()
	embedder = nil

	return func() {
		ingestService = oldIngest
		retrievalService = oldRetrieval
		memoryService = oldMemory
		configStore = oldConfig
		embedder = oldEmbedder
	}
}

// execute runs the root command with args and captures combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
