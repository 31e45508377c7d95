// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Eredità. It lets AI assistants query the estate: ask questions through
// the conversation loop and read the parsed heirs, assets and report.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrMissingSnapshotSource is returned when the snapshot source is not provided.
var ErrMissingSnapshotSource = errors.New("mcp: snapshot source is required")
