// Package tui provides the interactive terminal UI for Eredità: a chat
// panel for talking to the assistant next to a live view of the estate
// report, following the Elm architecture on Bubbletea.
package tui

import (
	"errors"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
)

// Port validation errors.
var (
	ErrMissingChatService    = errors.New("tui: chat service is required")
	ErrMissingSnapshotSource = errors.New("tui: snapshot source is required")
	ErrMissingSessionReader  = errors.New("tui: session reader is required")
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Chat drives conversation turns from the chat panel.
	Chat driving.ChatService

	// Snapshots provides the current document snapshot for the report panel.
	Snapshots driving.SnapshotSource

	// Session exposes the report sections and notes for the report panel.
	Session driving.SessionReader
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Snapshots == nil {
		return ErrMissingSnapshotSource
	}
	if p.Session == nil {
		return ErrMissingSessionReader
	}
	return nil
}
