// Package mcp provides an MCP (Model Context Protocol) server adapter for Dexter.
// It lets AI assistants list, search and inspect catalog entries.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
