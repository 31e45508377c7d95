package services

import (
	"sync/atomic"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
)

// Ensure SnapshotHolder implements the interface.
var _ driving.SnapshotSource = (*SnapshotHolder)(nil)

// SnapshotHolder owns the current document snapshot. Replacement is a
// single pointer swap, so a concurrent reader sees either the old or the
// new snapshot in full, never a partial one.
type SnapshotHolder struct {
	current atomic.Pointer[domain.Snapshot]
}

// NewSnapshotHolder creates an empty holder.
func NewSnapshotHolder() *SnapshotHolder {
	return &SnapshotHolder{}
}

// Current returns the latest snapshot, or nil before the first scan.
func (h *SnapshotHolder) Current() *domain.Snapshot {
	return h.current.Load()
}

// Replace swaps in a new snapshot.
func (h *SnapshotHolder) Replace(s *domain.Snapshot) {
	h.current.Store(s)
}
