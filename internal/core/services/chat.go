package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driving"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Ensure Chat implements the interface.
var _ driving.ChatService = (*Chat)(nil)

// Conversation defaults. MaxToolRounds bounds the tool loop so a
// misbehaving model cannot cycle forever; both are configuration values.
const (
	DefaultMaxToolRounds = 8
	DefaultMaxTokens     = 4096
	DefaultModelRetries  = 2
)

// degradedReply is returned when the model produced tool calls only, with
// no accompanying text, or when the tool-round bound was exceeded.
const degradedReply = "Done - check the Report panel."

// ChatConfig tunes the conversation loop.
type ChatConfig struct {
	// MaxToolRounds is the maximum number of tool-use responses handled
	// within a single user turn.
	MaxToolRounds int

	// MaxTokens bounds each model response.
	MaxTokens int

	// Retries is how many times a failed model request is retried with
	// backoff before the turn fails.
	Retries int
}

// Chat drives one user turn through the language model, executing any
// tool rounds the model requests, and persists the chat history at the
// terminal state. A nil LLM means chat is not configured.
type Chat struct {
	llm        driven.LLMService
	session    *Session
	snapshots  driving.SnapshotSource
	dispatcher *ToolDispatcher
	cfg        ChatConfig
}

// NewChat creates the conversation service.
func NewChat(llm driven.LLMService, session *Session, snapshots driving.SnapshotSource, dispatcher *ToolDispatcher, cfg ChatConfig) *Chat {
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = DefaultMaxToolRounds
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultModelRetries
	}
	return &Chat{
		llm:        llm,
		session:    session,
		snapshots:  snapshots,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Send runs one full conversational turn. Tool calls within a model
// response are executed sequentially, in the order the model requested
// them, and each mutation is durably saved before its result is returned
// to the model.
func (c *Chat) Send(ctx context.Context, userMessage string) (string, error) {
	if c.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	c.session.AppendMessage(domain.ChatMessage{Role: domain.RoleUser, Content: userMessage})

	system := BuildContext(c.snapshots.Current(), c.session)
	tools := ToolCatalogue()

	// The full history is resent every turn; no truncation or windowing.
	history := c.session.Messages()
	messages := make([]driven.Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, driven.TextMessage(m.Role, m.Content))
	}

	resp, err := c.complete(ctx, system, messages, tools)
	if err != nil {
		return "", err
	}

	rounds := 0
	for resp.StopReason == driven.StopReasonToolUse {
		if rounds >= c.cfg.MaxToolRounds {
			logger.Warn("Tool round limit (%d) reached, terminating turn", c.cfg.MaxToolRounds)
			return c.finish(ctx, degradedReply)
		}
		rounds++

		var results []driven.ContentBlock
		for _, block := range resp.Blocks {
			if block.Type != driven.BlockToolUse {
				continue
			}
			result := c.dispatcher.Dispatch(ctx, block.Name, block.Input)
			results = append(results, driven.ContentBlock{
				Type:      driven.BlockToolResult,
				ToolUseID: block.ID,
				Content:   result,
			})
		}

		// Echo the assistant response (tool_use blocks included) and a
		// synthetic user turn carrying all tool results, then re-send.
		messages = append(messages,
			driven.Message{Role: domain.RoleAssistant, Blocks: resp.Blocks},
			driven.Message{Role: domain.RoleUser, Blocks: results},
		)

		resp, err = c.complete(ctx, system, messages, tools)
		if err != nil {
			return "", err
		}
	}

	var reply strings.Builder
	for _, block := range resp.Blocks {
		if block.Type == driven.BlockText {
			reply.WriteString(block.Text)
		}
	}
	if reply.Len() == 0 {
		return c.finish(ctx, degradedReply)
	}
	return c.finish(ctx, reply.String())
}

// finish appends the assistant reply and persists the chat history.
func (c *Chat) finish(ctx context.Context, reply string) (string, error) {
	c.session.AppendMessage(domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
	if err := c.session.SaveChat(ctx); err != nil {
		logger.Warn("Persisting chat history: %v", err)
	}
	return reply, nil
}

// complete sends one request, retrying transient failures with backoff.
func (c *Chat) complete(ctx context.Context, system string, messages []driven.Message, tools []driven.ToolDef) (*driven.ChatResponse, error) {
	req := driven.ChatRequest{
		System:    system,
		Messages:  messages,
		Tools:     tools,
		MaxTokens: c.cfg.MaxTokens,
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			logger.Debug("Retrying model request in %s (attempt %d)", backoff, attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.llm.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("model request: %w", lastErr)
}

// History returns the current chat history.
func (c *Chat) History() []domain.ChatMessage {
	return c.session.Messages()
}

// ClearHistory empties the chat history and persists the empty list.
func (c *Chat) ClearHistory(ctx context.Context) error {
	return c.session.ClearMessages(ctx)
}

// InterviewPrompt returns the canned user message that starts or resumes
// the guided interview, depending on whether entries already exist.
func (c *Chat) InterviewPrompt() string {
	if len(c.session.Interview()) == 0 {
		return "Please start the interview. Ask me ONE question at a time to gather " +
			"information about the inheritance situation. Start with the basics."
	}
	return "Please continue the interview. Review what has already been covered " +
		"and ask the next most useful question. Ask ONE question at a time."
}
