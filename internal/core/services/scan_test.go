package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(store *fakeDocStore) *Scanner {
	return NewScanner(store, &testRegistry{exts: []string{".txt"}}, nil, "")
}

func TestScanner_Scan(t *testing.T) {
	store := newFakeDocStore()
	store.put("/Famiglia/eredi.txt", []byte("Eredi:\n1. Maria (12/03/1975), coniugata, 2 figli;\nImmobili:\nApartment in Rome"))
	store.put("/photo.jpg", []byte{0xff, 0xd8})

	scanner := newTestScanner(store)
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	// Unsupported extensions are filtered from documents.
	require.Len(t, snapshot.Documents, 1)
	doc := snapshot.Documents[0]
	assert.Equal(t, "Famiglia/eredi.txt", doc.Path)
	assert.Equal(t, "Famiglia", doc.Folder)
	assert.Equal(t, "eredi.txt", doc.Filename)
	assert.Equal(t, ".txt", doc.Extension)
	assert.Equal(t, uint64(len(store.files["/famiglia/eredi.txt"])), doc.SizeBytes)
	assert.False(t, doc.ScannedAt.IsZero())

	require.Len(t, snapshot.Heirs, 1)
	require.Len(t, snapshot.Assets, 1)
	assert.Equal(t, "Maria", snapshot.Heirs[0].Name)
	assert.Equal(t, "Apartment in Rome", snapshot.Assets[0].Description)
}

// stubPipeline implements driven.TextPipeline for scanner tests.
type stubPipeline struct {
	err error
}

func (s *stubPipeline) Process(_ context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return strings.ToUpper(text), nil
}

func TestScanner_AppliesPipeline(t *testing.T) {
	store := newFakeDocStore()
	store.put("/note.txt", []byte("plain content"))

	scanner := NewScanner(store, &testRegistry{exts: []string{".txt"}}, &stubPipeline{}, "")
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Documents, 1)
	assert.Equal(t, "PLAIN CONTENT", snapshot.Documents[0].Text)
}

func TestScanner_PipelineFailureSkipsFile(t *testing.T) {
	store := newFakeDocStore()
	store.put("/note.txt", []byte("plain content"))

	scanner := NewScanner(store, &testRegistry{exts: []string{".txt"}}, &stubPipeline{err: errors.New("boom")}, "")
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Documents)
}

func TestScanner_SnapshotsHaveUniqueIDs(t *testing.T) {
	store := newFakeDocStore()
	store.put("/note.txt", []byte("plain content"))

	scanner := newTestScanner(store)
	first, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	second, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestScanner_RootFolder(t *testing.T) {
	store := newFakeDocStore()
	store.put("/note.txt", []byte("plain content"))

	scanner := newTestScanner(store)
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Documents, 1)
	assert.Equal(t, "root", snapshot.Documents[0].Folder)
}

func TestScanner_SkipsEmptyText(t *testing.T) {
	store := newFakeDocStore()
	store.put("/blank.txt", []byte("   \n\t\n"))

	scanner := newTestScanner(store)
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Documents)
}

func TestScanner_PerFileFailureSkipsFile(t *testing.T) {
	store := newFakeDocStore()
	store.put("/good.txt", []byte("some text"))
	store.put("/bad.txt", []byte("other text"))
	store.dlErr["/bad.txt"] = errors.New("transient download failure")

	scanner := newTestScanner(store)
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Documents, 1)
	assert.Equal(t, "good.txt", snapshot.Documents[0].Path)
}

func TestScanner_ListingFailureYieldsEmptySet(t *testing.T) {
	store := newFakeDocStore()
	store.put("/doc.txt", []byte("text"))
	store.listErr = errors.New("store offline")

	scanner := newTestScanner(store)
	snapshot, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Documents)
	assert.Empty(t, scanner.LastFingerprint())
}

func TestScanner_NilStore(t *testing.T) {
	scanner := NewScanner(nil, &testRegistry{}, nil, "")

	_, err := scanner.Scan(context.Background())
	assert.Error(t, err)

	fp, err := scanner.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fp)
}

func TestScanner_ScanRecordsFingerprint(t *testing.T) {
	store := newFakeDocStore()
	store.put("/doc.txt", []byte("text"))

	scanner := newTestScanner(store)
	assert.Empty(t, scanner.LastFingerprint())

	_, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	fp, err := scanner.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fp, scanner.LastFingerprint())
}

func TestFingerprint_Deterministic(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("aaa"))
	store.put("/b.pdf", []byte("bbbb"))

	scanner := newTestScanner(store)
	ctx := context.Background()

	fp1, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)
	fp2, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, fp1)
	assert.Equal(t, fp1, fp2)
}

func TestFingerprint_ChangesOnModification(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("aaa"))

	scanner := newTestScanner(store)
	ctx := context.Background()

	before, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)

	store.put("/a.txt", []byte("aaaa plus more"))
	after, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprint_ChangesOnAddRemove(t *testing.T) {
	store := newFakeDocStore()
	store.put("/a.txt", []byte("aaa"))

	scanner := newTestScanner(store)
	ctx := context.Background()

	one, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)

	// Unsupported extensions still count toward the fingerprint.
	store.put("/b.zip", []byte("zzzz"))
	two, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, one, two)

	store.mu.Lock()
	store.entries = store.entries[:1]
	store.mu.Unlock()
	three, err := scanner.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Equal(t, one, three)
}

func TestFingerprint_UnreachableStoreIsEmpty(t *testing.T) {
	store := newFakeDocStore()
	store.listErr = errors.New("offline")

	scanner := newTestScanner(store)
	fp, err := scanner.Fingerprint(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fp)
}
