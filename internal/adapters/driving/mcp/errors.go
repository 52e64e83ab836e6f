// Package mcp provides an MCP (Model Context Protocol) server adapter for estix.
// It lets AI assistants export, import and inspect ESX documents.
package mcp

import "errors"

// ErrMissingInterchangeService is returned when the interchange service is not provided.
var ErrMissingInterchangeService = errors.New("mcp: interchange service is required")
