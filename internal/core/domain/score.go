package domain

// Retrievable is implemented by items that can be ranked by the hybrid
// scorer. Both RAG chunks and memory facts satisfy it, so one ranking
// implementation serves both stores.
type Retrievable interface {
	// Vector returns the stored embedding, or nil when none exists.
	Vector() []float32

	// Text returns the text the lexical heuristics operate on.
	Text() string
}

// ScoreResult is a ranked retrieval hit with its score breakdown.
// Results are produced fresh per query and never persisted.
type ScoreResult[T Retrievable] struct {
	// Item is the scored candidate.
	Item T

	// Score is the composite relevance score in [0, 1].
	// Always min(1, EmbeddingSimilarity + KeywordBoost + ExactMatchBoost).
	Score float64

	// EmbeddingSimilarity is cosine similarity remapped to [0, 1].
	EmbeddingSimilarity float64

	// KeywordBoost rewards token overlap between query and candidate.
	KeywordBoost float64

	// ExactMatchBoost rewards exact or superset lexical matches.
	ExactMatchBoost float64
}
