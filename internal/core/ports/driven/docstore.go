package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// DocumentStore persists documents and their chunks.
// Backed by SQLite, with an in-memory implementation for tests.
//
// The store is assumed to support concurrent reads and writes; the core
// adds no locking of its own beyond persisting chunk batches in ascending
// index order so partial readers always observe a contiguous prefix.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks appends or updates a batch of chunks. Batches arrive in
	// ascending chunk index order within one ingestion run.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by index.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListEmbeddedChunks returns every chunk carrying a non-nil embedding,
	// across all documents. Retrieval is global over the knowledge base.
	ListEmbeddedChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteChunks removes all chunks for a document, atomically.
	DeleteChunks(ctx context.Context, documentID string) error

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
