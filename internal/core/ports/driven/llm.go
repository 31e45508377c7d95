package driven

import (
	"context"
	"encoding/json"
)

// Stop reasons a ChatResponse may carry. The conversation loop must
// handle both: ToolUse means the model wants tools run and the results
// sent back; EndTurn means the response is terminal.
const (
	StopReasonToolUse = "tool_use"
	StopReasonEndTurn = "end_turn"
)

// Content block types.
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is one block of a message. Type selects which fields are
// meaningful: text blocks carry Text; tool_use blocks carry ID, Name and
// Input; tool_result blocks carry ToolUseID and Content.
type ContentBlock struct {
	Type string `json:"type"`

	// Text content (type "text").
	Text string `json:"text,omitempty"`

	// Tool use request (type "tool_use").
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// Tool result (type "tool_result").
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// Message is one conversation turn in a chat request.
type Message struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Blocks is the message content. A plain text turn is a single
	// text block; tool rounds carry tool_use and tool_result blocks.
	Blocks []ContentBlock `json:"content"`
}

// TextMessage builds a single-text-block message.
func TextMessage(role, text string) Message {
	return Message{
		Role:   role,
		Blocks: []ContentBlock{{Type: BlockText, Text: text}},
	}
}

// ToolDef describes one catalogued tool in the model's tool schema.
type ToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// ChatRequest is one request to the language model.
type ChatRequest struct {
	// System is the grounding context, assembled fresh every turn.
	System string

	// Messages is the full conversation history plus any tool rounds.
	Messages []Message

	// Tools is the tool catalogue offered to the model.
	Tools []ToolDef

	// MaxTokens bounds the model output. Required by the API.
	MaxTokens int
}

// ChatResponse is the model's reply.
type ChatResponse struct {
	// StopReason is one of the StopReason constants.
	StopReason string

	// Blocks may mix text and tool_use blocks in one response.
	Blocks []ContentBlock
}

// LLMService provides the conversational model behind the assistant.
// This is an optional service - when nil, chat degrades to a visible
// "not configured" state while the rest of the application works.
type LLMService interface {
	// Chat sends one request and returns the model's response.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
