package driving

import (
	"context"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// ScanService orchestrates store listing, text extraction and fact parsing
// into one immutable document snapshot.
type ScanService interface {
	// Scan performs a full scan and returns the new snapshot.
	// Returns domain.ErrStoreUnavailable when the store is not configured.
	Scan(ctx context.Context) (*domain.Snapshot, error)

	// Fingerprint computes the current store fingerprint without scanning.
	// Returns an empty string when the store is unreachable.
	Fingerprint(ctx context.Context) (string, error)

	// LastFingerprint returns the fingerprint observed by the most recent
	// scan, or empty if no scan has completed.
	LastFingerprint() string
}

// SnapshotSource provides read access to the current document snapshot.
// Presentation layers read through this; the poller replaces the snapshot
// behind it atomically.
type SnapshotSource interface {
	// Current returns the latest snapshot, or nil before the first scan.
	Current() *domain.Snapshot
}
