// Package dropbox implements the document store over the Dropbox API.
package dropbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// tokenURL is Dropbox's OAuth2 token endpoint.
const tokenURL = "https://api.dropboxapi.com/oauth2/token"

// Conservative client-side rate limit; Dropbox throttles per app.
const (
	requestsPerSecond = 4
	burstSize         = 8
)

// Config holds Dropbox credentials. Either a long-lived access token or
// the app-key/app-secret/refresh-token triple must be set.
type Config struct {
	AppKey       string
	AppSecret    string
	RefreshToken string
	AccessToken  string
}

// Configured reports whether the config carries usable credentials.
func (c Config) Configured() bool {
	if c.AccessToken != "" {
		return true
	}
	return c.AppKey != "" && c.AppSecret != "" && c.RefreshToken != ""
}

// Store is a Dropbox-backed document store.
type Store struct {
	client  files.Client
	limiter *rate.Limiter
}

// New creates a Dropbox store. Missing credentials return
// domain.ErrStoreUnavailable so callers can surface an unconfigured
// state instead of crashing.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if !cfg.Configured() {
		return nil, domain.ErrStoreUnavailable
	}

	token := cfg.AccessToken
	if token == "" {
		// Short-lived access tokens are minted from the refresh token.
		conf := &oauth2.Config{
			ClientID:     cfg.AppKey,
			ClientSecret: cfg.AppSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		}
		tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken}).Token()
		if err != nil {
			return nil, fmt.Errorf("refresh dropbox token: %w", err)
		}
		token = tok.AccessToken
	}

	return &Store{
		client:  files.New(dropbox.Config{Token: token}),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}, nil
}

// newWithClient is the test seam.
func newWithClient(client files.Client) *Store {
	return &Store{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// ListAll lists every file under path recursively, draining pagination
// before returning. Folder entries are dropped.
func (s *Store) ListAll(ctx context.Context, path string) ([]domain.FileEntry, error) {
	arg := files.NewListFolderArg(normalisePath(path))
	arg.Recursive = true

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := s.client.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("list folder: %w", err)
	}

	var entries []domain.FileEntry
	entries = appendFiles(entries, res.Entries)

	for res.HasMore {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		res, err = s.client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("list folder continue: %w", err)
		}
		entries = appendFiles(entries, res.Entries)
	}

	logger.Debug("Dropbox listing: %d files under %q", len(entries), path)
	return entries, nil
}

// Download returns the raw bytes of the file at path.
func (s *Store) Download(ctx context.Context, path string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	_, rc, err := s.client.Download(files.NewDownloadArg(path))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", path, err)
	}
	return content, nil
}

// Upload writes content to path, overwriting any existing file.
func (s *Store) Upload(ctx context.Context, content []byte, path string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	arg := files.NewUploadArg(path)
	arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeOverwrite}}
	arg.Mute = true

	if _, err := s.client.Upload(arg, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// appendFiles converts file metadata to entries, skipping folders.
func appendFiles(entries []domain.FileEntry, metadata []files.IsMetadata) []domain.FileEntry {
	for _, entry := range metadata {
		file, ok := entry.(*files.FileMetadata)
		if !ok {
			continue
		}
		entries = append(entries, fileToEntry(file))
	}
	return entries
}

// fileToEntry converts Dropbox file metadata to a store-neutral entry.
func fileToEntry(file *files.FileMetadata) domain.FileEntry {
	return domain.FileEntry{
		Path:        file.PathDisplay,
		PathLower:   file.PathLower,
		Size:        file.Size,
		ContentHash: file.ContentHash,
	}
}

// normalisePath maps the conventional root spellings to the empty string
// the API expects.
func normalisePath(path string) string {
	if path == "/" {
		return ""
	}
	return path
}

// isNotFound detects the path/not_found lookup error.
func isNotFound(err error) bool {
	var apiErr files.DownloadAPIError
	if errors.As(err, &apiErr) {
		if apiErr.EndpointError != nil && apiErr.EndpointError.Path != nil {
			return apiErr.EndpointError.Path.Tag == files.LookupErrorNotFound
		}
	}
	return strings.Contains(err.Error(), "not_found")
}
