// Package pdf extracts text from PDF documents using the poppler
// pdftotext binary. Scanned image-only PDFs yield no text; there is no
// OCR fallback.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	// Run executes the named command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner CommandRunner
}

// New creates a PDF normaliser using the system pdftotext binary.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Available reports whether pdftotext is on the PATH.
func Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return "pdftotext is required for PDF extraction.\n" +
		"  macOS:  brew install poppler\n" +
		"  Linux:  apt install poppler-utils"
}

// Normalise writes the PDF to a temp file and extracts its text with
// pdftotext in layout mode.
func (n *Normaliser) Normalise(ctx context.Context, _ string, content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "eredita-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// "-" sends the extracted text to stdout.
	out, err := n.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
