package domain

import "time"

// Document represents an uploaded document in the RAG knowledge base.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable name, usually the original filename.
	Name string

	// Content is the full text content after normalisation.
	// This is the complete document text before chunking.
	Content string

	// SizeBytes is the size of the original content.
	SizeBytes int64

	// IsProcessed reports whether ingestion has completed for this document.
	// Mutated only by the ingestion pipeline.
	IsProcessed bool

	// ChunkCount is the number of chunks produced by the last ingestion run.
	ChunkCount int

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Chunk represents a retrievable unit within a document.
// Documents are split into overlapping chunks for granular retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// ChunkIndex is the 0-based ordinal position within the document.
	// Indexes are contiguous per document and define reconstruction order.
	ChunkIndex int

	// Embedding is the vector representation for semantic retrieval.
	// Nil when embedding generation failed during ingestion; such chunks
	// remain readable but are never ranked.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}

// Vector returns the chunk's embedding, implementing Retrievable.
func (c Chunk) Vector() []float32 {
	return c.Embedding
}

// Text returns the chunk's content, implementing Retrievable.
func (c Chunk) Text() string {
	return c.Content
}

// HasEmbedding reports whether the chunk carries a stored vector.
func (c Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}
