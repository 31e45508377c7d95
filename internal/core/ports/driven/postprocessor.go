package driven

import "context"

// TextProcessor transforms extracted document text before fact parsing
// and context assembly. Processors are pure text-to-text steps.
type TextProcessor interface {
	// Name returns the unique processor name.
	Name() string

	// Process transforms the text.
	Process(ctx context.Context, text string) (string, error)
}

// TextPipeline chains TextProcessors and runs them in order over the
// output of a normaliser.
type TextPipeline interface {
	// Process runs the text through all processors in order.
	Process(ctx context.Context, text string) (string, error)
}
