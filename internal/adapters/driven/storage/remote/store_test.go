package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// fakeDocs is an in-memory DocumentStore.
type fakeDocs struct {
	files map[string][]byte
	upErr error
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{files: make(map[string][]byte)}
}

func (f *fakeDocs) ListAll(_ context.Context, _ string) ([]domain.FileEntry, error) {
	return nil, nil
}

func (f *fakeDocs) Download(_ context.Context, path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

func (f *fakeDocs) Upload(_ context.Context, content []byte, path string) error {
	if f.upErr != nil {
		return f.upErr
	}
	f.files[path] = content
	return nil
}

func TestLoadMissingBlob(t *testing.T) {
	store := New(newFakeDocs())

	var notes []domain.Note
	found, err := store.Load(context.Background(), domain.CollectionNotes, &notes)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, notes)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	docs := newFakeDocs()
	store := New(docs)
	ctx := context.Background()

	notes := []domain.Note{
		{Note: "Maria has three children", AddedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, store.Save(ctx, domain.CollectionNotes, notes))

	// The blob lands under the app folder, named after the key.
	_, ok := docs.files["/_app/notes.json"]
	assert.True(t, ok)

	var loaded []domain.Note
	found, err := store.Load(ctx, domain.CollectionNotes, &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, notes, loaded)
}

func TestSaveReplacesWholeBlob(t *testing.T) {
	store := New(newFakeDocs())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.CollectionReports, []domain.ReportSection{
		{ID: "a", Title: "A"}, {ID: "b", Title: "B"},
	}))
	require.NoError(t, store.Save(ctx, domain.CollectionReports, []domain.ReportSection{
		{ID: "a", Title: "A"},
	}))

	var loaded []domain.ReportSection
	found, err := store.Load(ctx, domain.CollectionReports, &loaded)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, loaded, 1)
}

func TestSaveFailureSurfaces(t *testing.T) {
	docs := newFakeDocs()
	docs.upErr = errors.New("network down")
	store := New(docs)

	err := store.Save(context.Background(), domain.CollectionNotes, []domain.Note{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes")
}

func TestLoadCorruptBlob(t *testing.T) {
	docs := newFakeDocs()
	docs.files["/_app/notes.json"] = []byte("{not json")
	store := New(docs)

	var notes []domain.Note
	_, err := store.Load(context.Background(), domain.CollectionNotes, &notes)
	assert.Error(t, err)
}
