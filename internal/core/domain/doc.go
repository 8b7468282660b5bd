// Package domain defines the core business entities for Recall.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document in the RAG knowledge base
//   - Chunk: A retrievable unit within a document
//   - MemoryEntry: A long-term fact extracted from conversation
//   - ScoreResult: A ranked retrieval hit with its score breakdown
//   - ProcessingStatus: The live state of an ingestion operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
