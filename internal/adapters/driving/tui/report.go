package tui

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// reportContent renders the report panel text: the assistant-maintained
// sections first, then the facts parsed from the documents and the saved
// notes. Rebuilt on every snapshot refresh and after every tool round.
func reportContent(ports *Ports) string {
	var b strings.Builder

	sections := ports.Session.Reports()
	if len(sections) == 0 {
		b.WriteString("No report sections yet.\nAsk the assistant to build one.\n\n")
	}
	for i := range sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", sections[i].Title, sections[i].Content)
	}

	snapshot := ports.Snapshots.Current()
	if snapshot == nil {
		b.WriteString("Waiting for the first document scan...\n")
	} else {
		writeHeirs(&b, snapshot.Heirs)
		writeAssets(&b, snapshot.Assets)
		fmt.Fprintf(&b, "Scanned %d documents at %s\n",
			len(snapshot.Documents), snapshot.ScanDate.Format("15:04:05"))
	}

	if notes := ports.Session.Notes(); len(notes) > 0 {
		b.WriteString("\nNotes\n")
		for i := range notes {
			fmt.Fprintf(&b, "  [%d] %s\n", i, notes[i].Note)
		}
	}

	return b.String()
}

func writeHeirs(b *strings.Builder, heirs []domain.HeirRecord) {
	if len(heirs) == 0 {
		return
	}

	fmt.Fprintf(b, "Heirs (%d)\n", len(heirs))
	for i := range heirs {
		h := &heirs[i]
		line := h.Name
		if h.DateOfBirth != "" {
			line += ", born " + h.DateOfBirth
		}
		fmt.Fprintf(b, "  %d. %s\n", i+1, line)
	}

	for _, group := range domain.FindTwins(heirs) {
		fmt.Fprintf(b, "  Twins (%s): %s\n", group.DateOfBirth, strings.Join(group.Names, ", "))
	}

	shares := domain.ComputeSuccession(len(heirs))
	fmt.Fprintf(b, "  Legittima %s, disponibile %s, minimum %.1f%% per heir\n\n",
		shares.Legittima, shares.Disponibile, shares.PerHeirPct)
}

func writeAssets(b *strings.Builder, assets []domain.AssetRecord) {
	if len(assets) == 0 {
		return
	}
	fmt.Fprintf(b, "Assets (%d)\n", len(assets))
	for i := range assets {
		fmt.Fprintf(b, "  - %s\n", assets[i].Description)
	}
	b.WriteString("\n")
}
