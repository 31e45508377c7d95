package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the document store is not configured.
	// Document features degrade to a visible "not configured" state.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrLLMUnavailable indicates the language model is not configured.
	// Chat is disabled with an explanatory message, never a crash.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUnknownTool indicates the model requested a tool that is not
	// in the catalogue.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnsupportedType indicates a file extension with no registered
	// text extraction.
	ErrUnsupportedType = errors.New("unsupported type")
)
