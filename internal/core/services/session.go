package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionReader = (*Session)(nil)

// Session is the explicit per-session state object: the in-memory copies
// of the four persisted collections. It is created at session start,
// passed by reference into the context assembler, tool dispatcher and
// conversation loop, and discarded at session end. Load and save happen
// only at its boundary - no ambient globals.
//
// Access is guarded for the snapshot poller's sake, but the application
// is single-session: one conversation turn runs at a time.
type Session struct {
	store driven.CollectionStore

	mu        sync.RWMutex
	messages  []domain.ChatMessage
	reports   []domain.ReportSection
	notes     []domain.Note
	interview []domain.InterviewEntry
}

// NewSession creates an empty session over the given store. A nil store
// keeps all collections in memory only.
func NewSession(store driven.CollectionStore) *Session {
	return &Session{store: store}
}

// Load populates every collection from the store. Loading is best-effort:
// a collection that fails to load starts empty and the failure is logged.
func (s *Session) Load(ctx context.Context) {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, v := range map[domain.CollectionKey]any{
		domain.CollectionChatHistory: &s.messages,
		domain.CollectionReports:     &s.reports,
		domain.CollectionNotes:       &s.notes,
		domain.CollectionInterview:   &s.interview,
	} {
		if _, err := s.store.Load(ctx, key, v); err != nil {
			logger.Warn("Loading %s: %v", key, err)
		}
	}
}

// Messages returns a copy of the chat history.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChatMessage(nil), s.messages...)
}

// Reports returns a copy of the report sections in insertion order.
func (s *Session) Reports() []domain.ReportSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ReportSection(nil), s.reports...)
}

// Notes returns a copy of the notes.
func (s *Session) Notes() []domain.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Note(nil), s.notes...)
}

// Interview returns a copy of the interview entries.
func (s *Session) Interview() []domain.InterviewEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.InterviewEntry(nil), s.interview...)
}

// AppendMessage appends one chat message without persisting; the
// conversation loop persists the history once per turn.
func (s *Session) AppendMessage(m domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// ClearMessages empties the chat history and persists the empty list.
func (s *Session) ClearMessages(ctx context.Context) error {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
	return s.SaveChat(ctx)
}

// mutate runs fn under the write lock and then durably saves the named
// collection. The persisted state never diverges from memory across a
// turn boundary.
func (s *Session) mutate(ctx context.Context, key domain.CollectionKey, fn func()) error {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	return s.save(ctx, key)
}

func (s *Session) save(ctx context.Context, key domain.CollectionKey) error {
	if s.store == nil {
		return nil
	}
	s.mu.RLock()
	var v any
	switch key {
	case domain.CollectionChatHistory:
		v = s.messages
	case domain.CollectionReports:
		v = s.reports
	case domain.CollectionNotes:
		v = s.notes
	case domain.CollectionInterview:
		v = s.interview
	}
	s.mu.RUnlock()

	if err := s.store.Save(ctx, key, v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveChat persists the chat history blob.
func (s *Session) SaveChat(ctx context.Context) error {
	return s.save(ctx, domain.CollectionChatHistory)
}
