package mcp

import (
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat drives conversation turns for the ask tool.
	Chat driving.ChatService

	// Snapshots provides the current document snapshot.
	Snapshots driving.SnapshotSource

	// Session exposes the persisted collections for resource reads.
	Session driving.SessionReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Snapshots == nil {
		return ErrMissingSnapshotSource
	}
	// Session is optional; resources degrade to empty lists.
	return nil
}
