// Package cleaner provides a text cleanup processor for extracted text.
package cleaner

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxChars is the default upper bound on text length per document.
// Extraction can yield very large texts; the bound keeps a single file
// from dominating the assembled context.
const DefaultMaxChars = 80000

// Processor normalises extracted text: line endings, control characters,
// trailing whitespace and runs of blank lines, with an optional length cap.
type Processor struct {
	maxChars int
}

// Option configures the cleaner processor.
type Option func(*Processor)

// WithMaxChars sets the text length cap in bytes. Zero disables the cap.
func WithMaxChars(maxChars int) Option {
	return func(p *Processor) {
		if maxChars >= 0 {
			p.maxChars = maxChars
		}
	}
}

// New creates a cleaner processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxChars: DefaultMaxChars,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "cleaner"
}

// Process cleans the text. Never fails; the error return satisfies the
// TextProcessor interface.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		line = strings.Map(dropControl, line)
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blanks++
			// At most one blank line between paragraphs.
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		cleaned = append(cleaned, line)
	}

	result := strings.TrimSpace(strings.Join(cleaned, "\n"))
	if p.maxChars > 0 && len(result) > p.maxChars {
		cut := p.maxChars
		for cut > 0 && !utf8.RuneStart(result[cut]) {
			cut--
		}
		result = strings.TrimSpace(result[:cut])
	}
	return result, nil
}

// dropControl removes control runes, keeping tabs.
func dropControl(r rune) rune {
	if r == '\t' {
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
