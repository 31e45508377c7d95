package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New("/definitely/not/a/directory")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestListAll(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Eredi"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Eredi", "Famiglia.txt"), []byte("Eredi:\n1. Maria"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testamento.txt"), []byte("ultime volontà"), 0o644))

	entries, err := store.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPath := map[string]domain.FileEntry{}
	for _, e := range entries {
		byPath[e.Path] = e
	}
	famiglia, ok := byPath["/Eredi/Famiglia.txt"]
	require.True(t, ok)
	assert.Equal(t, "/eredi/famiglia.txt", famiglia.PathLower)
	assert.Equal(t, uint64(len("Eredi:\n1. Maria")), famiglia.Size)
	assert.NotEmpty(t, famiglia.ContentHash)
}

func TestListAll_SkipsHidden(t *testing.T) {
	store, dir := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0o644))

	entries, err := store.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/visible.txt", entries[0].Path)
}

func TestListAll_HashChangesWithContent(t *testing.T) {
	store, dir := newTestStore(t)
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	first, err := store.ListAll(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	second, err := store.ListAll(context.Background(), "")
	require.NoError(t, err)

	assert.NotEqual(t, first[0].ContentHash, second[0].ContentHash)
}

func TestDownloadUploadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, []byte(`{"notes":[]}`), "/_app/notes.json"))

	content, err := store.Download(ctx, "/_app/notes.json")
	require.NoError(t, err)
	assert.Equal(t, `{"notes":[]}`, string(content))

	// Overwrite replaces in full.
	require.NoError(t, store.Upload(ctx, []byte(`{"notes":["x"]}`), "/_app/notes.json"))
	content, err = store.Download(ctx, "/_app/notes.json")
	require.NoError(t, err)
	assert.Equal(t, `{"notes":["x"]}`, string(content))
}

func TestDownload_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Download(context.Background(), "/missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatch_EmitsHintOnChange(t *testing.T) {
	store, dir := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hints, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nuovo.txt"), []byte("x"), 0o644))

	select {
	case _, ok := <-hints:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change hint")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	hints, err := store.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-hints:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the hint channel to close")
	}
}
