package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// contextHeader is the fixed role and behaviour preamble. It names the
// tools and the interview topic taxonomy, and declares the source-of-truth
// precedence the section ordering below encodes:
// interview > notes > documents > prior report content.
var contextHeader = []string{
	"You are an advisor helping an Italian family with inheritance division.",
	"You have access to the following documents and extracted data.",
	"Answer in the same language the user writes in (Italian or English).",
	"When discussing legal matters, note that this is informational only, not legal advice.",
	"",
	"== YOUR TOOLS ==",
	"",
	"REPORTS: You can create/update/delete report sections on the Report panel using",
	"update_report and delete_report_section. Use these when asked to create reports,",
	"summaries, proposals, or any structured output.",
	"",
	"NOTES: When the user corrects information or provides new facts, ALWAYS use add_note",
	"to save it. Notes override document data and persist across sessions.",
	"",
	"INTERVIEW: When conducting an interview, save each answer using save_interview_entry.",
	"If the user corrects a previous interview answer, use update_interview_entry.",
	"Interview data is the DEFINITIVE source of truth - it takes highest priority",
	"over documents and notes when generating reports or answering questions.",
	"",
	"When conducting an interview, ask ONE question at a time. Cover these topics:",
	"- Deceased: name, date of death, place of residence, marital status at death",
	"- Family: complete family tree, spouse(s), all children and their families",
	"- Properties: all real estate, locations, estimated values, ownership details",
	"- Finances: bank accounts, investments, pensions, debts, mortgages",
	"- Legal: existing wills, donations, prior agreements, power of attorney",
	"- Agreements: any informal agreements between heirs, preferences, disputes",
	"Review what has already been answered before asking the next question.",
	"Ask follow-up questions when answers are incomplete or raise new topics.",
	"",
}

// BuildContext merges the snapshot and session collections into the one
// prioritised text block sent as the model's system context. Deterministic
// and side-effect free: section order encodes source priority, and
// interview entries and notes are tagged with their current indices
// because the update tools address them by index.
func BuildContext(snapshot *domain.Snapshot, session *Session) string {
	var b strings.Builder
	for _, line := range contextHeader {
		b.WriteString(line)
		b.WriteString("\n")
	}

	writeInterview(&b, session.Interview())
	writeNotes(&b, session.Notes())

	if snapshot != nil {
		writeHeirs(&b, snapshot.Heirs)
		writeAssets(&b, snapshot.Assets)
		writeDocuments(&b, snapshot.Documents)
	} else {
		b.WriteString("== RAW DOCUMENT TEXT ==\n")
	}

	writeReports(&b, session.Reports())

	return strings.TrimRight(b.String(), "\n")
}

// writeInterview groups entries by topic, preserving entry indices.
func writeInterview(b *strings.Builder, entries []domain.InterviewEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("== INTERVIEW DATA (definitive source of truth) ==\n")

	type indexed struct {
		i     int
		entry domain.InterviewEntry
	}
	byTopic := make(map[domain.Topic][]indexed)
	var order []domain.Topic
	for i, e := range entries {
		if _, seen := byTopic[e.Topic]; !seen {
			order = append(order, e.Topic)
		}
		byTopic[e.Topic] = append(byTopic[e.Topic], indexed{i, e})
	}

	for _, topic := range order {
		fmt.Fprintf(b, "\n--- %s ---\n", topic.Label())
		for _, ie := range byTopic[topic] {
			fmt.Fprintf(b, "  [%d] Q: %s\n", ie.i, ie.entry.Question)
			fmt.Fprintf(b, "      A: %s\n", ie.entry.Answer)
		}
	}
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, notes []domain.Note) {
	if len(notes) == 0 {
		return
	}
	b.WriteString("== CORRECTIONS & NOTES (override document data) ==\n")
	for i, n := range notes {
		fmt.Fprintf(b, "  %d. %s (added %s)\n", i, n.Note, n.AddedAt.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

func writeHeirs(b *strings.Builder, heirs []domain.HeirRecord) {
	if len(heirs) == 0 {
		return
	}
	b.WriteString("== HEIRS (Eredi) - from documents ==\n")
	for i, h := range heirs {
		name := h.Name
		if name == "" {
			name = "Unknown"
		}
		line := fmt.Sprintf("  %d. %s", i+1, name)
		if h.DateOfBirth != "" {
			line += ", born " + h.DateOfBirth
		}
		if h.MaritalStatus != "" {
			line += ", " + h.MaritalStatus
		}
		if h.NumChildren != nil {
			line += fmt.Sprintf(", %d children", *h.NumChildren)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeAssets(b *strings.Builder, assets []domain.AssetRecord) {
	if len(assets) == 0 {
		return
	}
	b.WriteString("== ASSETS (Immobili / Beni) - from documents ==\n")
	for i, a := range assets {
		fmt.Fprintf(b, "  %d. %s\n", i+1, a.Description)
	}
	b.WriteString("\n")
}

func writeDocuments(b *strings.Builder, documents []domain.Document) {
	b.WriteString("== RAW DOCUMENT TEXT ==\n")
	for _, doc := range documents {
		fmt.Fprintf(b, "\n--- Document: %s (from folder: %s) ---\n", doc.Path, doc.Folder)
		b.WriteString(doc.Text)
		b.WriteString("\n")
	}
}

func writeReports(b *strings.Builder, reports []domain.ReportSection) {
	if len(reports) == 0 {
		return
	}
	b.WriteString("\n== CURRENT REPORT SECTIONS ==\n")
	for _, s := range reports {
		fmt.Fprintf(b, "\n--- Section: %s (id: %s) ---\n", s.Title, s.ID)
		b.WriteString(s.Content)
		b.WriteString("\n")
	}
}
