package driving

import (
	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// SessionReader exposes the persisted session collections to the
// presentation layers. Mutation happens only through the tool dispatcher;
// readers get defensive copies.
type SessionReader interface {
	// Reports returns the report sections in display order.
	Reports() []domain.ReportSection

	// Notes returns the saved notes in insertion order.
	Notes() []domain.Note

	// Interview returns the recorded interview entries in insertion order.
	Interview() []domain.InterviewEntry
}
