// Package sqlite persists collections in a local SQLite database, for
// running against a local folder where no shared remote store exists.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CollectionStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	content    BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a SQLite-backed collection store. Each collection is one row
// holding the whole JSON blob, matching the replace-on-save contract.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.eredita/data/collections.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".eredita", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "collections.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and unmarshals the collection blob into v. A missing row
// returns (false, nil).
func (s *Store) Load(ctx context.Context, key domain.CollectionKey, v any) (bool, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT content FROM collections WHERE key = ?", string(key),
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal(content, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save marshals v and upserts it, replacing the whole blob.
func (s *Store) Save(ctx context.Context, key domain.CollectionKey, v any) error {
	content, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		string(key), content, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
