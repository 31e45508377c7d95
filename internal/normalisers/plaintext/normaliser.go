// Package plaintext extracts text from files that already are text.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".md", ".csv"}
}

// Normalise decodes the raw bytes as UTF-8, falling back to Latin-1 for
// legacy documents, and trims surrounding whitespace.
func (n *Normaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	var text string
	if utf8.Valid(content) {
		text = string(content)
	} else {
		text = decodeLatin1(content)
	}
	return strings.TrimSpace(text), nil
}

// decodeLatin1 maps each byte to the code point of the same value.
func decodeLatin1(content []byte) string {
	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes)
}
