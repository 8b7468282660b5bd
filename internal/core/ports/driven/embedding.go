package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, semantic retrieval is disabled.
//
// The underlying model runtime is assumed NOT to be safely reentrant:
// callers must hold at most one embedding request in flight at a time.
// The serial adapter (internal/adapters/driven/embedding/serial) provides
// that exclusion for any implementation.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// Blank input may short-circuit to a zero vector of Dimensions()
	// length without calling the model runtime.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. Semantically
	// equivalent to mapping Embed over the slice.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// Stored vectors of any other length are treated as missing, since
	// vectors from different models are not comparable.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
