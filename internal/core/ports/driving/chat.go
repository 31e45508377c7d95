package driving

import (
	"context"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// ChatService drives one conversational turn with the assistant,
// including any tool rounds the model requests.
type ChatService interface {
	// Send appends the user message, runs the model through its tool
	// rounds and returns the terminal text reply. The reply and the user
	// message are appended to the persisted chat history.
	// Returns domain.ErrLLMUnavailable when no model is configured.
	Send(ctx context.Context, userMessage string) (string, error)

	// History returns the current chat history.
	History() []domain.ChatMessage

	// ClearHistory empties the chat history and persists the empty list.
	ClearHistory(ctx context.Context) error

	// InterviewPrompt returns the canned user message that starts the
	// guided interview, or continues it when entries already exist.
	InterviewPrompt() string
}
