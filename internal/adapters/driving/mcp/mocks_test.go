package mcp

import (
	"context"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// mockChatService implements driving.ChatService for testing.
type mockChatService struct {
	reply string
	err   error
	sent  []string
}

func (m *mockChatService) Send(_ context.Context, userMessage string) (string, error) {
	m.sent = append(m.sent, userMessage)
	return m.reply, m.err
}

func (m *mockChatService) History() []domain.ChatMessage {
	return nil
}

func (m *mockChatService) ClearHistory(_ context.Context) error {
	return nil
}

func (m *mockChatService) InterviewPrompt() string {
	return "Please start the interview to gather information about the estate."
}

// mockSnapshotSource implements driving.SnapshotSource for testing.
type mockSnapshotSource struct {
	snapshot *domain.Snapshot
}

func (m *mockSnapshotSource) Current() *domain.Snapshot {
	return m.snapshot
}

// mockSessionReader implements driving.SessionReader for testing.
type mockSessionReader struct {
	reports []domain.ReportSection
	notes   []domain.Note
}

func (m *mockSessionReader) Reports() []domain.ReportSection {
	return m.reports
}

func (m *mockSessionReader) Notes() []domain.Note {
	return m.notes
}

func (m *mockSessionReader) Interview() []domain.InterviewEntry {
	return nil
}
