package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// memCollectionStore is an in-memory CollectionStore backed by JSON blobs,
// used to assert on what was durably saved.
type memCollectionStore struct {
	mu    sync.Mutex
	blobs map[domain.CollectionKey][]byte
	fail  bool
}

func newMemCollectionStore() *memCollectionStore {
	return &memCollectionStore{blobs: make(map[domain.CollectionKey][]byte)}
}

func (m *memCollectionStore) Load(_ context.Context, key domain.CollectionKey, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(blob, v)
}

func (m *memCollectionStore) Save(_ context.Context, key domain.CollectionKey, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store failure")
	}
	blob, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.blobs[key] = blob
	return nil
}

// saved unmarshals the persisted blob for key into v, returning false
// when nothing was saved.
func (m *memCollectionStore) saved(key domain.CollectionKey, v any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return false
	}
	return json.Unmarshal(blob, v) == nil
}

// fakeDocStore is a scripted DocumentStore.
type fakeDocStore struct {
	mu      sync.Mutex
	entries []domain.FileEntry
	files   map[string][]byte
	listErr error
	dlErr   map[string]error
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{files: make(map[string][]byte), dlErr: make(map[string]error)}
}

func (f *fakeDocStore) put(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lower := strings.ToLower(path)
	for i, e := range f.entries {
		if e.PathLower == lower {
			f.entries[i].Size = uint64(len(content))
			f.entries[i].ContentHash = fmt.Sprintf("hash-%s-%d", lower, len(content))
			f.files[lower] = content
			return
		}
	}
	f.entries = append(f.entries, domain.FileEntry{
		Path:        path,
		PathLower:   lower,
		Size:        uint64(len(content)),
		ContentHash: fmt.Sprintf("hash-%s-%d", lower, len(content)),
	})
	f.files[lower] = content
}

func (f *fakeDocStore) ListAll(_ context.Context, _ string) ([]domain.FileEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.FileEntry(nil), f.entries...), nil
}

func (f *fakeDocStore) Download(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dlErr[path]; err != nil {
		return nil, err
	}
	content, ok := f.files[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

func (f *fakeDocStore) Upload(_ context.Context, content []byte, path string) error {
	f.put(path, content)
	return nil
}

// passthroughNormaliser extracts raw bytes as text for .txt files.
type passthroughNormaliser struct{}

func (passthroughNormaliser) Extensions() []string { return []string{".txt"} }

func (passthroughNormaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	return string(content), nil
}

// testRegistry maps extensions to a passthrough normaliser.
type testRegistry struct{ exts []string }

func (r *testRegistry) ForExtension(ext string) (driven.Normaliser, bool) {
	for _, e := range r.exts {
		if e == ext {
			return passthroughNormaliser{}, true
		}
	}
	return nil, false
}

func (r *testRegistry) Extensions() []string { return r.exts }

// scriptedLLM replays a fixed sequence of responses and records requests.
type scriptedLLM struct {
	responses []*driven.ChatResponse
	requests  []driven.ChatRequest
	err       error
	errCount  int // fail the first errCount calls
	calls     int
}

func (s *scriptedLLM) Chat(_ context.Context, req driven.ChatRequest) (*driven.ChatResponse, error) {
	s.calls++
	s.requests = append(s.requests, req)
	if s.errCount > 0 {
		s.errCount--
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return &driven.ChatResponse{StopReason: driven.StopReasonEndTurn}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *scriptedLLM) ModelName() string             { return "scripted" }
func (s *scriptedLLM) Ping(_ context.Context) error  { return nil }
func (s *scriptedLLM) Close() error                  { return nil }

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func textResponse(text string) *driven.ChatResponse {
	return &driven.ChatResponse{
		StopReason: driven.StopReasonEndTurn,
		Blocks:     []driven.ContentBlock{{Type: driven.BlockText, Text: text}},
	}
}

func toolResponse(id, name string, input any) *driven.ChatResponse {
	raw, _ := json.Marshal(input)
	return &driven.ChatResponse{
		StopReason: driven.StopReasonToolUse,
		Blocks: []driven.ContentBlock{
			{Type: driven.BlockToolUse, ID: id, Name: name, Input: raw},
		},
	}
}
