package mcp

import (
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retriever finds relevant document chunks.
	Retriever driving.Retriever

	// Memory stores and retrieves long-term facts.
	Memory driving.MemoryService

	// Ingestor manages documents and reports pipeline status.
	Ingestor driving.Ingestor
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	// Memory and Ingestor are optional; their tools and resources
	// degrade to empty responses.
	return nil
}
