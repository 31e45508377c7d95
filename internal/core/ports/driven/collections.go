package driven

import (
	"context"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// CollectionStore persists the mutable collections (chat history, report
// sections, notes, interview entries) as whole-document blobs. Each save
// replaces the entire blob; there is no row-level update at this boundary.
// No cross-process locking exists: two processes writing the same
// collection concurrently silently overwrite each other (last-write-wins).
type CollectionStore interface {
	// Load reads the blob for key into v. Returns false with a nil error
	// when the collection has never been saved.
	Load(ctx context.Context, key domain.CollectionKey, v any) (bool, error)

	// Save replaces the blob for key with the JSON encoding of v.
	Save(ctx context.Context, key domain.CollectionKey, v any) error
}
