package domain

import "time"

// MemoryEntry is a long-term fact about the user, extracted from a prior
// conversation and retained across sessions. Entries are archived rather
// than hard-deleted so extraction history survives.
type MemoryEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// ConversationID links to the conversation the fact came from.
	ConversationID string

	// MessageID links to the specific message the fact was extracted from.
	MessageID string

	// Fact is the extracted statement, e.g. "prefers metric units".
	Fact string

	// CreatedAt is when the fact was extracted.
	CreatedAt time.Time

	// IsArchived marks the entry as soft-deleted.
	IsArchived bool

	// Embedding is the vector representation of the fact. Nil for legacy
	// entries written before embeddings existed; retrieval backfills these
	// on demand.
	Embedding []float32
}

// Vector returns the entry's embedding, implementing Retrievable.
func (m MemoryEntry) Vector() []float32 {
	return m.Embedding
}

// Text returns the fact text, implementing Retrievable.
func (m MemoryEntry) Text() string {
	return m.Fact
}

// HasEmbedding reports whether the entry carries a stored vector.
func (m MemoryEntry) HasEmbedding() bool {
	return len(m.Embedding) > 0
}

// AgeAtLeast reports whether the entry was created at least minAgeDays
// before now. Used as a hard pre-filter so facts stated in the current
// session are not echoed straight back.
func (m MemoryEntry) AgeAtLeast(now time.Time, minAgeDays int) bool {
	if minAgeDays <= 0 {
		return true
	}
	return now.Sub(m.CreatedAt) >= time.Duration(minAgeDays)*24*time.Hour
}
