// Package mcp provides an MCP (Model Context Protocol) server adapter for haat.
// It lets AI assistants browse the catalog and ask the style assistant.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
