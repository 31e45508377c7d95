package domain

import (
	"encoding/json"
	"fmt"
)

// Tool names as presented to the model. The catalogue schema is part of
// the system boundary and must remain stable.
const (
	ToolUpdateReport         = "update_report"
	ToolDeleteReportSection  = "delete_report_section"
	ToolAddNote              = "add_note"
	ToolRemoveNote           = "remove_note"
	ToolSaveInterviewEntry   = "save_interview_entry"
	ToolUpdateInterviewEntry = "update_interview_entry"
)

// ToolInvocation is a decoded, typed tool call. The concrete variants are
// the only implementations; the dispatcher switches exhaustively over them.
type ToolInvocation interface {
	// ToolName returns the wire name of the tool.
	ToolName() string
}

// UpdateReport creates or replaces a report section by ID.
type UpdateReport struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// DeleteReportSection removes a report section by ID.
type DeleteReportSection struct {
	SectionID string `json:"section_id"`
}

// AddNote appends a correction note.
type AddNote struct {
	Note string `json:"note"`
}

// RemoveNote removes the note at the given 0-based index.
type RemoveNote struct {
	NoteIndex int `json:"note_index"`
}

// SaveInterviewEntry appends an interview question/answer pair.
type SaveInterviewEntry struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// UpdateInterviewEntry replaces the answer at the given 0-based index.
type UpdateInterviewEntry struct {
	EntryIndex int    `json:"entry_index"`
	Answer     string `json:"answer"`
}

// ToolName implements ToolInvocation.
func (UpdateReport) ToolName() string { return ToolUpdateReport }

// ToolName implements ToolInvocation.
func (DeleteReportSection) ToolName() string { return ToolDeleteReportSection }

// ToolName implements ToolInvocation.
func (AddNote) ToolName() string { return ToolAddNote }

// ToolName implements ToolInvocation.
func (RemoveNote) ToolName() string { return ToolRemoveNote }

// ToolName implements ToolInvocation.
func (SaveInterviewEntry) ToolName() string { return ToolSaveInterviewEntry }

// ToolName implements ToolInvocation.
func (UpdateInterviewEntry) ToolName() string { return ToolUpdateInterviewEntry }

// DecodeToolInvocation turns a model-issued (name, input) pair into a typed
// invocation. Unknown names and malformed input return an error; callers
// report it back to the model as a tool result rather than failing the turn.
func DecodeToolInvocation(name string, input json.RawMessage) (ToolInvocation, error) {
	decode := func(v ToolInvocation) (ToolInvocation, error) {
		if len(input) > 0 {
			if err := json.Unmarshal(input, v); err != nil {
				return nil, fmt.Errorf("decode %s input: %w", name, err)
			}
		}
		return v, nil
	}

	switch name {
	case ToolUpdateReport:
		return decode(&UpdateReport{})
	case ToolDeleteReportSection:
		return decode(&DeleteReportSection{})
	case ToolAddNote:
		return decode(&AddNote{})
	case ToolRemoveNote:
		return decode(&RemoveNote{})
	case ToolSaveInterviewEntry:
		return decode(&SaveInterviewEntry{})
	case ToolUpdateInterviewEntry:
		return decode(&UpdateInterviewEntry{})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}
