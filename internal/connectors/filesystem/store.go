// Package filesystem implements the document store over a local folder,
// for offline use and testing. Paths are store-rooted ("/Eredi/a.txt"
// maps to <root>/Eredi/a.txt).
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.ChangeWatcher = (*Store)(nil)
)

// Store is a local-folder document store.
type Store struct {
	root string
}

// New creates a store rooted at the given directory. The directory must
// exist; a missing root returns domain.ErrStoreUnavailable.
func New(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, domain.ErrStoreUnavailable
	}
	return &Store{root: filepath.Clean(root)}, nil
}

// ListAll walks the tree under path, returning every regular file.
// Hidden files and directories are skipped.
func (s *Store) ListAll(_ context.Context, path string) ([]domain.FileEntry, error) {
	start := s.localPath(path)

	var entries []domain.FileEntry
	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != start {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		storePath, err := s.storePath(p)
		if err != nil {
			return err
		}

		hash, err := hashFile(p)
		if err != nil {
			return err
		}
		entries = append(entries, domain.FileEntry{
			Path:        storePath,
			PathLower:   strings.ToLower(storePath),
			Size:        uint64(info.Size()),
			ContentHash: hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", start, err)
	}
	return entries, nil
}

// Download returns the raw bytes of the file at path.
func (s *Store) Download(_ context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(s.localPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// Upload writes content to path, creating parent directories as needed.
func (s *Store) Upload(_ context.Context, content []byte, path string) error {
	local := s.localPath(path)
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	if err := os.WriteFile(local, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// localPath maps a store-rooted path onto the filesystem.
func (s *Store) localPath(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}

// storePath maps a filesystem path back to its store-rooted form.
func (s *Store) storePath(local string) (string, error) {
	rel, err := filepath.Rel(s.root, local)
	if err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(rel), nil
}

// hashFile returns the hex SHA-256 of the file's content. The exact
// algorithm is irrelevant; fingerprinting only compares for equality.
func hashFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]), nil
}
