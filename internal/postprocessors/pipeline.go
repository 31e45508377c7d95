// Package postprocessors provides text processing steps applied to
// extracted document text before parsing.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.TextPipeline = (*Pipeline)(nil)

// Pipeline chains multiple TextProcessors and runs them in order.
type Pipeline struct {
	processors []driven.TextProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.TextProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the text through all processors in order. A processor
// failure aborts the pipeline.
func (p *Pipeline) Process(ctx context.Context, text string) (string, error) {
	for _, processor := range p.processors {
		var err error
		text, err = processor.Process(ctx, text)
		if err != nil {
			return "", fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}
	return text, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.TextProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
