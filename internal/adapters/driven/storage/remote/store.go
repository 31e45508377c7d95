// Package remote persists collections as JSON blobs inside the document
// store itself, under the application folder. Keeping state next to the
// documents means every device sharing the store shares the collections.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CollectionStore = (*Store)(nil)

// AppFolder is where collection blobs live inside the document store.
const AppFolder = "/_app"

// Store saves whole-collection JSON blobs through a DocumentStore.
type Store struct {
	docs   driven.DocumentStore
	folder string
}

// New creates a collection store over the given document store.
func New(docs driven.DocumentStore) *Store {
	return &Store{docs: docs, folder: AppFolder}
}

// Load reads and unmarshals the collection blob into v. A missing blob
// returns (false, nil): first run is not an error.
func (s *Store) Load(ctx context.Context, key domain.CollectionKey, v any) (bool, error) {
	content, err := s.docs.Download(ctx, s.blobPath(key))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save marshals v and uploads it, replacing the whole blob.
func (s *Store) Save(ctx context.Context, key domain.CollectionKey, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.docs.Upload(ctx, buf.Bytes(), s.blobPath(key)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) blobPath(key domain.CollectionKey) string {
	return path.Join(s.folder, key.Filename())
}
