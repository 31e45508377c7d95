package driven

import "context"

// Normaliser extracts plain text from raw document bytes.
// Each normaliser handles specific file extensions (e.g. PDF, DOCX).
type Normaliser interface {
	// Extensions returns the lowercase extensions this normaliser
	// handles, including the leading dot.
	Extensions() []string

	// Normalise converts raw bytes to plain text. An empty string with a
	// nil error means the file has no extractable text and is skipped.
	Normalise(ctx context.Context, filename string, content []byte) (string, error)
}

// NormaliserRegistry selects a normaliser by file extension.
type NormaliserRegistry interface {
	// ForExtension returns the normaliser registered for the lowercase
	// extension, or false when the extension is unsupported.
	ForExtension(ext string) (Normaliser, bool)

	// Extensions returns all registered extensions.
	Extensions() []string
}
