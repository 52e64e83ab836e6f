package mcp

import (
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Interchange exports, imports and previews documents.
	Interchange driving.InterchangeService

	// Project lists stored projects. Optional.
	Project driving.ProjectService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Interchange == nil {
		return ErrMissingInterchangeService
	}
	return nil
}
