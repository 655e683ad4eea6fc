package mcp

import (
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driven"
	"github.com/ragdex-labs/ragdex-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes. This provides
// a single injection point for dependency injection.
type Ports struct {
	// Retriever answers similarity queries.
	Retriever driving.Retriever

	// Asker runs the full question-answering pipeline. Optional; without
	// it only retrieval is exposed.
	Asker driving.Asker

	// Store supplies collection statistics. Optional.
	Store driven.VectorStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retriever == nil {
		return ErrMissingRetriever
	}
	return nil
}
