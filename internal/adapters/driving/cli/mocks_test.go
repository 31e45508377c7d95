package cli

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// mockChatService implements driving.ChatService for testing.
type mockChatService struct {
	reply   string
	err     error
	sent    []string
	cleared bool
	prompt  string
	history []domain.ChatMessage
}

func (m *mockChatService) Send(_ context.Context, userMessage string) (string, error) {
	m.sent = append(m.sent, userMessage)
	return m.reply, m.err
}

func (m *mockChatService) History() []domain.ChatMessage {
	return m.history
}

func (m *mockChatService) ClearHistory(_ context.Context) error {
	m.cleared = true
	return nil
}

func (m *mockChatService) InterviewPrompt() string {
	if m.prompt != "" {
		return m.prompt
	}
	return "Please start the interview to gather information about the estate."
}

// mockScanService implements driving.ScanService for testing.
type mockScanService struct {
	snapshot *domain.Snapshot
	err      error
}

func (m *mockScanService) Scan(_ context.Context) (*domain.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

func (m *mockScanService) Fingerprint(_ context.Context) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockScanService) LastFingerprint() string {
	return ""
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
	reports   []domain.ReportSection
	notes     []domain.Note
	interview []domain.InterviewEntry
}

func (m *mockSessionReader) Reports() []domain.ReportSection {
	return m.reports
}

func (m *mockSessionReader) Notes() []domain.Note {
	return m.notes
}

func (m *mockSessionReader) Interview() []domain.InterviewEntry {
	return m.interview
}

// runCommand executes the root command with the given args and returns
// the captured output.
func runCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func testDate(day int) time.Time {
	return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC)
}
