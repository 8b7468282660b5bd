package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// Ingestor turns raw document text into scored, queryable chunks.
type Ingestor interface {
	// Ingest creates a document from named content and runs the full
	// chunk -> embed -> persist pipeline. Returns the stored document.
	Ingest(ctx context.Context, name, content string) (*domain.Document, error)

	// Reprocess deletes all existing chunks for a document and runs the
	// pipeline again over its current content. Never incremental.
	Reprocess(ctx context.Context, documentID string) error

	// Delete removes a document and all its chunks.
	Delete(ctx context.Context, documentID string) error

	// GetDocument returns a stored document by ID.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments returns all stored documents, oldest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Status returns the current processing status.
	Status() domain.ProcessingStatus

	// Subscribe returns a channel of status updates. Updates are dropped
	// rather than blocking the pipeline on a slow observer.
	Subscribe() <-chan domain.ProcessingStatus
}
