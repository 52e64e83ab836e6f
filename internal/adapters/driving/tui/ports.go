// Package tui provides the interactive document preview for estix.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Interchange imports the previewed document on request.
	Interchange driving.InterchangeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Interchange == nil {
		return ErrMissingInterchangeService
	}
	return nil
}
