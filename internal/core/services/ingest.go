package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recall-cli/internal/chunker"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.Ingestor = (*IngestionService)(nil)

// persistBatchSize is the number of chunks written per store call.
// Batching bounds peak memory for large documents while keeping chunk
// order contiguous for partial readers.
const persistBatchSize = 5

// IngestionService runs the chunk -> embed -> persist pipeline and
// reports its progress through a StatusBroker.
//
// The embedder is optional: when nil, chunks are persisted without
// vectors and are never ranked, but remain readable.
type IngestionService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
	broker   *StatusBroker
	settings domain.RetrievalSettings

	mu      sync.Mutex
	running bool
	// progress is the last percentage published by the running
	// operation; fail reports it instead of whatever the broker last
	// saw, which may belong to a previous operation.
	progress int
}

// NewIngestionService creates an ingestion service. Settings are clamped
// defensively; callers normally clamp at the configuration boundary.
func NewIngestionService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	broker *StatusBroker,
	settings domain.RetrievalSettings,
) *IngestionService {
	if broker == nil {
		broker = NewStatusBroker()
	}
	return &IngestionService{
		docStore: docStore,
		embedder: embedder,
		broker:   broker,
		settings: settings.Clamped(),
	}
}

// Status returns the current processing status.
func (s *IngestionService) Status() domain.ProcessingStatus {
	return s.broker.Current()
}

// Subscribe returns the status update channel.
func (s *IngestionService) Subscribe() <-chan domain.ProcessingStatus {
	return s.broker.Updates()
}

// Ingest creates a document from named content and processes it.
func (s *IngestionService) Ingest(ctx context.Context, name, content string) (*domain.Document, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	now := time.Now()
	doc := &domain.Document{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		SizeBytes: int64(len(content)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if err := s.process(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// Reprocess deletes all existing chunks for a document and runs the
// pipeline again over its current content. Never incremental diffing.
func (s *IngestionService) Reprocess(ctx context.Context, documentID string) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	logger.Info("Reprocessing document %s", documentID)
	s.publish(domain.ProcessingStatus{
		State:      domain.StateDeleting,
		DocumentID: documentID,
		Progress:   50,
		Step:       "removing existing chunks",
	})
	if err := s.docStore.DeleteChunks(ctx, documentID); err != nil {
		s.fail(documentID, fmt.Sprintf("delete chunks: %v", err))
		return fmt.Errorf("delete chunks: %w", err)
	}

	return s.process(ctx, doc)
}

// Delete removes a document and all its chunks. Progress is reported at
// the midpoint once the chunk removal executes and 100 on completion,
// purely for UI feedback; the removal itself is atomic in the store.
func (s *IngestionService) Delete(ctx context.Context, documentID string) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.publish(domain.ProcessingStatus{
		State:      domain.StateDeleting,
		DocumentID: documentID,
		Progress:   50,
		Step:       "deleting chunks",
	})

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		s.fail(documentID, fmt.Sprintf("delete document: %v", err))
		return fmt.Errorf("delete document: %w", err)
	}

	s.publish(domain.ProcessingStatus{
		State:      domain.StateCompleted,
		DocumentID: documentID,
		Progress:   100,
		Step:       "deleted",
	})
	logger.Info("Deleted document %s", documentID)
	return nil
}

// GetDocument returns a stored document by ID.
func (s *IngestionService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// ListDocuments returns all stored documents, oldest first.
func (s *IngestionService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// process runs the pipeline for one document: chunk, embed each chunk in
// index order, persist in batches, then mark the document processed.
func (s *IngestionService) process(ctx context.Context, doc *domain.Document) error {
	texts, err := chunker.Split(doc.Content, s.settings.ChunkSize, s.settings.ChunkOverlap)
	if err != nil {
		s.fail(doc.ID, err.Error())
		return fmt.Errorf("chunk document: %w", err)
	}
	if len(texts) == 0 {
		s.fail(doc.ID, domain.ErrEmptyDocument.Error())
		return domain.ErrEmptyDocument
	}

	total := len(texts)
	logger.Section("Ingestion")
	logger.Info("Processing %s: %d chunks (size=%d overlap=%d)",
		doc.Name, total, s.settings.ChunkSize, s.settings.ChunkOverlap)

	batch := make([]domain.Chunk, 0, persistBatchSize)
	embedFailures := 0

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			s.fail(doc.ID, "cancelled")
			return err
		}

		chunk := domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			ChunkIndex: i,
		}

		if s.embedder != nil {
			embedding, err := s.embedder.Embed(ctx, text)
			if err != nil {
				// Degraded: the chunk is persisted without a vector and
				// will never be ranked, but a single embedding failure
				// is not fatal to the run.
				embedFailures++
				logger.Warn("Embedding failed for chunk %d/%d: %v", i+1, total, err)
			} else {
				chunk.Embedding = embedding
			}
		}

		batch = append(batch, chunk)
		if len(batch) == persistBatchSize {
			if err := s.docStore.SaveChunks(ctx, batch); err != nil {
				s.fail(doc.ID, fmt.Sprintf("save chunks: %v", err))
				return fmt.Errorf("save chunks: %w", err)
			}
			batch = batch[:0]
		}

		s.publish(domain.ProcessingStatus{
			State:      domain.StateProcessing,
			DocumentID: doc.ID,
			Progress:   progressPercent(i+1, total),
			Step:       fmt.Sprintf("embedding chunk %d/%d", i+1, total),
		})
	}

	if len(batch) > 0 {
		if err := s.docStore.SaveChunks(ctx, batch); err != nil {
			s.fail(doc.ID, fmt.Sprintf("save chunks: %v", err))
			return fmt.Errorf("save chunks: %w", err)
		}
	}

	doc.IsProcessed = true
	doc.ChunkCount = total
	doc.UpdatedAt = time.Now()
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		s.fail(doc.ID, fmt.Sprintf("mark processed: %v", err))
		return fmt.Errorf("mark processed: %w", err)
	}

	if embedFailures > 0 {
		logger.Warn("Completed with %d/%d chunks missing embeddings", embedFailures, total)
	}
	s.publish(domain.ProcessingStatus{
		State:      domain.StateCompleted,
		DocumentID: doc.ID,
		Progress:   100,
		Step:       fmt.Sprintf("processed %d chunks", total),
	})
	logger.Info("Ingestion complete: %s (%d chunks)", doc.Name, total)
	return nil
}

// publish forwards a status to the broker, remembering the operation's
// own progress for fail.
func (s *IngestionService) publish(status domain.ProcessingStatus) {
	s.mu.Lock()
	s.progress = status.Progress
	s.mu.Unlock()
	s.broker.Publish(status)
}

// fail publishes the failure terminal status.
func (s *IngestionService) fail(documentID, reason string) {
	s.mu.Lock()
	progress := s.progress
	s.mu.Unlock()
	s.broker.Publish(domain.ProcessingStatus{
		State:      domain.StateFailed,
		DocumentID: documentID,
		Progress:   progress,
		Reason:     reason,
	})
}

// acquire serialises whole operations; a second concurrent ingest is
// rejected rather than queued.
func (s *IngestionService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.ErrIngestInProgress
	}
	s.running = true
	s.progress = 0
	return nil
}

func (s *IngestionService) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// progressPercent is ceil(done*100/total).
func progressPercent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return (done*100 + total - 1) / total
}
