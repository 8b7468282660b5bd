// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and command results flowing through the
// Elm architecture.
package messages

import (
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewQuery is the retrieval input and results view.
	ViewQuery ViewType = iota
	// ViewDocuments lists ingested documents.
	ViewDocuments
	// ViewMemory lists and searches memory facts.
	ViewMemory
)

// viewCount is the number of cycleable views.
const viewCount = 3

// Next returns the view after v in tab order.
func (v ViewType) Next() ViewType {
	return (v + 1) % viewCount
}

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewQuery:
		return "query"
	case ViewDocuments:
		return "documents"
	case ViewMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// QueryCompleted carries chunk retrieval results back to the model.
type QueryCompleted struct {
	Query   string
	Results []domain.ScoreResult[domain.Chunk]
	Err     error
}

// DocumentsLoaded carries the document list.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// MemoriesLoaded carries memory facts, either a full listing or the
// results of a relevance search.
type MemoriesLoaded struct {
	Query   string
	Entries []domain.MemoryEntry
	Err     error
}

// MemoryArchived signals an archive operation finished.
type MemoryArchived struct {
	ID  string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
