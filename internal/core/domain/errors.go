package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates chunking parameters that can never
	// terminate (overlap >= chunk size). Rejected before chunking begins.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrEmptyDocument indicates a document whose content produced no chunks.
	ErrEmptyDocument = errors.New("document is empty or too short")

	// ErrIngestInProgress indicates an ingestion is already running for
	// the document.
	ErrIngestInProgress = errors.New("ingestion in progress")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured. Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrDimensionMismatch indicates two vectors of different lengths were
	// compared. Stored vectors from a previous embedding model are treated
	// as missing rather than scored.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
