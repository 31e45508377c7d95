package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// ToolDispatcher validates and applies model-issued tool invocations
// against the session collections. Every successful mutation is durably
// saved before the result string is returned.
//
// Dispatch never fails the turn: unknown tools and invalid indices come
// back as descriptive result strings the model can self-correct from.
type ToolDispatcher struct {
	session *Session
}

// NewToolDispatcher creates a dispatcher over the session.
func NewToolDispatcher(session *Session) *ToolDispatcher {
	return &ToolDispatcher{session: session}
}

// Dispatch decodes and executes one tool call, returning the tool result
// text for the model.
func (d *ToolDispatcher) Dispatch(ctx context.Context, name string, input json.RawMessage) string {
	inv, err := domain.DecodeToolInvocation(name, input)
	if err != nil {
		logger.Warn("Tool call rejected: %v", err)
		if errors.Is(err, domain.ErrUnknownTool) {
			return fmt.Sprintf("Unknown tool %q", name)
		}
		return fmt.Sprintf("Invalid input for tool %q", name)
	}
	return d.apply(ctx, inv)
}

// apply executes a typed invocation. The switch is exhaustive over the
// domain tool variants.
func (d *ToolDispatcher) apply(ctx context.Context, inv domain.ToolInvocation) string {
	s := d.session
	now := time.Now()

	var result string
	var err error

	switch v := inv.(type) {
	case *domain.UpdateReport:
		err = s.mutate(ctx, domain.CollectionReports, func() {
			for i := range s.reports {
				if s.reports[i].ID == v.SectionID {
					s.reports[i].Title = v.Title
					s.reports[i].Content = v.Content
					s.reports[i].UpdatedAt = now
					result = fmt.Sprintf("Updated report section '%s'", v.Title)
					return
				}
			}
			s.reports = append(s.reports, domain.ReportSection{
				ID:        v.SectionID,
				Title:     v.Title,
				Content:   v.Content,
				CreatedAt: now,
				UpdatedAt: now,
			})
			result = fmt.Sprintf("Created report section '%s'", v.Title)
		})

	case *domain.DeleteReportSection:
		err = s.mutate(ctx, domain.CollectionReports, func() {
			kept := s.reports[:0]
			for _, sec := range s.reports {
				if sec.ID != v.SectionID {
					kept = append(kept, sec)
				}
			}
			if len(kept) < len(s.reports) {
				s.reports = kept
				result = fmt.Sprintf("Deleted report section '%s'", v.SectionID)
			} else {
				result = fmt.Sprintf("Section '%s' not found", v.SectionID)
			}
		})

	case *domain.AddNote:
		err = s.mutate(ctx, domain.CollectionNotes, func() {
			s.notes = append(s.notes, domain.Note{Note: v.Note, AddedAt: now})
			result = fmt.Sprintf("Saved note: '%s'", v.Note)
		})

	case *domain.RemoveNote:
		err = s.mutate(ctx, domain.CollectionNotes, func() {
			if v.NoteIndex < 0 || v.NoteIndex >= len(s.notes) {
				result = fmt.Sprintf("Invalid note index %d", v.NoteIndex)
				return
			}
			removed := s.notes[v.NoteIndex]
			s.notes = append(s.notes[:v.NoteIndex], s.notes[v.NoteIndex+1:]...)
			result = fmt.Sprintf("Removed note: '%s'", removed.Note)
		})

	case *domain.SaveInterviewEntry:
		err = s.mutate(ctx, domain.CollectionInterview, func() {
			s.interview = append(s.interview, domain.InterviewEntry{
				Topic:      domain.Topic(v.Topic),
				Question:   v.Question,
				Answer:     v.Answer,
				AnsweredAt: now,
			})
			result = fmt.Sprintf("Saved interview entry under '%s'", v.Topic)
		})

	case *domain.UpdateInterviewEntry:
		err = s.mutate(ctx, domain.CollectionInterview, func() {
			if v.EntryIndex < 0 || v.EntryIndex >= len(s.interview) {
				result = fmt.Sprintf("Invalid entry index %d", v.EntryIndex)
				return
			}
			s.interview[v.EntryIndex].Answer = v.Answer
			s.interview[v.EntryIndex].AnsweredAt = now
			result = fmt.Sprintf("Updated interview entry %d", v.EntryIndex)
		})

	default:
		result = fmt.Sprintf("Unknown tool %q", inv.ToolName())
	}

	if err != nil {
		// The in-memory mutation took effect; persistence is retried on
		// the next save of the same collection.
		logger.Warn("Persisting %s after tool call: %v", inv.ToolName(), err)
	}
	return result
}

// ToolCatalogue is the schema for the six catalogued tools, exactly as
// offered to the model. The parameter names are part of the system
// boundary and must remain stable.
func ToolCatalogue() []driven.ToolDef {
	obj := func(required []string, props map[string]any) map[string]any {
		return map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		}
	}
	str := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	integer := func(desc string) map[string]any {
		return map[string]any{"type": "integer", "description": desc}
	}

	return []driven.ToolDef{
		{
			Name: domain.ToolUpdateReport,
			Description: "Create or update a section of the inheritance report. " +
				"Use this when the user asks to create, modify, add to, or correct " +
				"any part of the report. Each section has a unique ID - reuse the " +
				"same ID to update an existing section.",
			InputSchema: obj([]string{"section_id", "title", "content"}, map[string]any{
				"section_id": str("Unique identifier (e.g. 'division_proposal'). Lowercase with underscores."),
				"title":      str("Display title for the section"),
				"content":    str("Markdown content. Use tables, lists, headers as needed."),
			}),
		},
		{
			Name:        domain.ToolDeleteReportSection,
			Description: "Remove a section from the report.",
			InputSchema: obj([]string{"section_id"}, map[string]any{
				"section_id": str("The section ID to remove"),
			}),
		},
		{
			Name: domain.ToolAddNote,
			Description: "Save a correction or important fact provided by the user. " +
				"Use this whenever the user corrects information or provides new facts " +
				"not in the documents. Notes persist and override document data.",
			InputSchema: obj([]string{"note"}, map[string]any{
				"note": str("The correction or fact to remember. Be specific and concise."),
			}),
		},
		{
			Name:        domain.ToolRemoveNote,
			Description: "Remove a previously saved note that is no longer accurate.",
			InputSchema: obj([]string{"note_index"}, map[string]any{
				"note_index": integer("0-based index of the note to remove."),
			}),
		},
		{
			Name: domain.ToolSaveInterviewEntry,
			Description: "Save a question-answer pair from the interview. Use this during interviews " +
				"to record the user's answer. Each entry has a topic for grouping.",
			InputSchema: obj([]string{"topic", "question", "answer"}, map[string]any{
				"topic":    str("Category: 'deceased', 'family', 'properties', 'finances', 'legal', 'agreements', or 'other'."),
				"question": str("The interview question that was asked."),
				"answer":   str("Summary of the user's answer. Be factual and concise."),
			}),
		},
		{
			Name:        domain.ToolUpdateInterviewEntry,
			Description: "Update the answer of an existing interview entry when the user provides a correction.",
			InputSchema: obj([]string{"entry_index", "answer"}, map[string]any{
				"entry_index": integer("0-based index of the interview entry to update."),
				"answer":      str("The corrected answer."),
			}),
		},
	}
}
