package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driving.ScanService = (*Scanner)(nil)

// Scanner orchestrates store listing, text extraction and fact parsing
// into immutable snapshots. A nil store means "not configured": Scan
// returns domain.ErrStoreUnavailable and Fingerprint returns empty.
type Scanner struct {
	store      driven.DocumentStore
	registry   driven.NormaliserRegistry
	pipeline   driven.TextPipeline
	rootFolder string

	mu       sync.Mutex
	lastFP   string
	lastScan time.Time
}

// NewScanner creates a scanner over the given store and extraction
// registry. pipeline may be nil to skip text post-processing.
// rootFolder is the store path to scan ("" for the store root).
func NewScanner(store driven.DocumentStore, registry driven.NormaliserRegistry, pipeline driven.TextPipeline, rootFolder string) *Scanner {
	return &Scanner{
		store:      store,
		registry:   registry,
		pipeline:   pipeline,
		rootFolder: rootFolder,
	}
}

// Scan lists the store, extracts text from every supported file and
// parses heir and asset records. The fingerprint of the full listing is
// recorded so the poller does not re-trigger on the scan it caused.
//
// A listing failure aborts the whole scan; a per-file failure skips that
// file and continues.
func (s *Scanner) Scan(ctx context.Context) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}

	entries, err := s.store.ListAll(ctx, s.rootFolder)
	if err != nil {
		// A listing failure aborts the scan and yields an empty document
		// set, never a partial result. Clearing the recorded fingerprint
		// lets the next successful poll trigger a fresh scan.
		logger.Warn("Listing failed, scan yields no documents: %v", err)
		entries = nil
	}

	// Record the fingerprint of the complete listing, unsupported
	// extensions included, before any download can change timing.
	fp := computeFingerprint(entries)

	var documents []domain.Document
	for _, entry := range entries {
		ext := strings.ToLower(path.Ext(entry.Path))
		normaliser, ok := s.registry.ForExtension(ext)
		if !ok {
			continue
		}

		text, err := s.extract(ctx, normaliser, entry)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Path, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		relPath := strings.TrimPrefix(entry.Path, "/")
		folder := path.Dir(relPath)
		if folder == "." {
			folder = "root"
		}

		documents = append(documents, domain.Document{
			Path:      relPath,
			Folder:    folder,
			Filename:  path.Base(relPath),
			Extension: ext,
			Text:      text,
			ScannedAt: time.Now(),
			SizeBytes: entry.Size,
		})
	}

	snapshot := &domain.Snapshot{
		ID:        uuid.NewString(),
		ScanDate:  time.Now(),
		Documents: documents,
		Heirs:     ParseHeirs(documents),
		Assets:    ParseAssets(documents),
	}

	s.mu.Lock()
	s.lastFP = fp
	s.lastScan = snapshot.ScanDate
	s.mu.Unlock()

	logger.Info("Scan complete: %d documents, %d heirs, %d assets",
		len(documents), len(snapshot.Heirs), len(snapshot.Assets))

	return snapshot, nil
}

// extract downloads one file and runs its normaliser.
func (s *Scanner) extract(ctx context.Context, normaliser driven.Normaliser, entry domain.FileEntry) (string, error) {
	content, err := s.store.Download(ctx, entry.PathLower)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	text, err := normaliser.Normalise(ctx, path.Base(entry.Path), content)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	if s.pipeline != nil {
		text, err = s.pipeline.Process(ctx, text)
		if err != nil {
			return "", fmt.Errorf("post-process: %w", err)
		}
	}
	return text, nil
}

// Fingerprint computes the current store fingerprint. An unreachable or
// unconfigured store yields an empty string, never an error the poller
// has to act on.
func (s *Scanner) Fingerprint(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", nil
	}
	entries, err := s.store.ListAll(ctx, s.rootFolder)
	if err != nil {
		return "", nil //nolint:nilerr // Unreachable store is a no-op for polling
	}
	return computeFingerprint(entries), nil
}

// LastFingerprint returns the fingerprint recorded by the latest scan.
func (s *Scanner) LastFingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFP
}

// computeFingerprint derives an opaque digest of the store listing from
// the sorted (path, size, content hash) triples of every file. Any
// add, remove or modification changes the result; a no-op listing
// reproduces it exactly. Used only for change detection.
func computeFingerprint(entries []domain.FileEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s:%d:%s", e.PathLower, e.Size, e.ContentHash))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
