package mcp

import (
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server exposes.
type Ports struct {
	// Catalog serves products and categories.
	Catalog driving.CatalogService

	// Stylist answers style questions. Optional; the tool reports the LLM
	// as unavailable when nil.
	Stylist driving.StyleAssistant
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
