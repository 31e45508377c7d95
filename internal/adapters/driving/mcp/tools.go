package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to ask about the estate"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// InterviewInput is the input schema for the interview tool.
type InterviewInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "ask",
		Description: "Ask the estate assistant a question about the documents, " +
			"heirs, assets or report. The assistant may update the report or " +
			"save notes as a side effect.",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "interview",
		Description: "Start or continue the guided interview that collects " +
			"family details not found in the documents.",
	}, s.handleInterview)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return s.sendTurn(ctx, input.Question)
}

// handleInterview handles the interview tool invocation.
func (s *Server) handleInterview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ InterviewInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return s.sendTurn(ctx, s.ports.Chat.InterviewPrompt())
}

func (s *Server) sendTurn(ctx context.Context, message string) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Chat.Send(ctx, message)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return nil, AskOutput{}, errors.New("no model configured: set ANTHROPIC_API_KEY")
		}
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: reply}, nil
}
