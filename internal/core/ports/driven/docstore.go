package driven

import (
	"context"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// DocumentStore is the remote file store holding the family's documents.
// The reference implementation is Dropbox; a local folder adapter exists
// for offline use. Construction must fail gracefully (an unconfigured
// store is a normal, displayable state, not a crash).
type DocumentStore interface {
	// ListAll lists every file under path recursively, fully draining
	// pagination before returning. Folders are not included.
	ListAll(ctx context.Context, path string) ([]domain.FileEntry, error)

	// Download returns the raw bytes of the file at path.
	// Returns domain.ErrNotFound if the file does not exist.
	Download(ctx context.Context, path string) ([]byte, error)

	// Upload writes content to path, overwriting any existing file.
	Upload(ctx context.Context, content []byte, path string) error
}

// ChangeWatcher is an optional capability of a DocumentStore: a channel
// that receives a hint whenever the store's content may have changed.
// Hints only prompt an early fingerprint check; correctness depends on
// fingerprint comparison, never on interpreting the hint.
type ChangeWatcher interface {
	// Watch starts watching for changes. The returned channel is closed
	// when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
