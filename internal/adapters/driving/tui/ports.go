// Package tui implements the interactive terminal interface. It follows
// the Elm architecture via bubbletea: a root model that owns the active
// view and forwards messages to it.
package tui

import (
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ports holds the driving ports the TUI is built on. Retriever is
// required; the other services degrade to empty views when absent.
type Ports struct {
	Retriever driving.Retriever
	Memory    driving.MemoryService
	Ingestor  driving.Ingestor
}

// Validate checks that the required ports are present.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
