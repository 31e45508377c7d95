package domain

// HeirRecord is one heir parsed from a document's heir section.
// Parsing is best-effort: every field except Name may be absent.
// Duplicate heirs across documents are NOT deduplicated; each matching
// line becomes its own record.
type HeirRecord struct {
	// Name is the first name token of the heir line.
	Name string `json:"name"`

	// DateOfBirth is a DD/MM/YYYY date when present on the line.
	DateOfBirth string `json:"date_of_birth,omitempty"`

	// MaritalStatus is the normalised status: married, unmarried or widowed.
	MaritalStatus string `json:"marital_status,omitempty"`

	// MaritalStatusIT is the Italian form as written in the documents.
	MaritalStatusIT string `json:"marital_status_it,omitempty"`

	// NumChildren is the parsed child count; nil when the line has none.
	NumChildren *int `json:"num_children,omitempty"`

	// RawText is the cleaned source line, enumerator stripped.
	RawText string `json:"raw_text"`

	// SourceFile is the path of the document the line came from.
	SourceFile string `json:"source_file"`
}

// AssetRecord is one asset line parsed from a document's asset section.
// Same non-deduplication policy as HeirRecord.
type AssetRecord struct {
	// Description is the asset line with trailing semicolons trimmed.
	Description string `json:"description"`

	// RawText is the source line as scanned.
	RawText string `json:"raw_text"`

	// SourceFile is the path of the document the line came from.
	SourceFile string `json:"source_file"`
}

// TwinGroup collects heirs sharing a date of birth. Grouping is a
// presentation concern; the parser keeps every record separate.
type TwinGroup struct {
	DateOfBirth string   `json:"date_of_birth"`
	Names       []string `json:"names"`
}

// FindTwins returns groups of two or more heirs sharing the same
// non-empty date of birth, in first-seen order.
func FindTwins(heirs []HeirRecord) []TwinGroup {
	byDOB := make(map[string][]string)
	var order []string
	for _, h := range heirs {
		if h.DateOfBirth == "" {
			continue
		}
		if _, seen := byDOB[h.DateOfBirth]; !seen {
			order = append(order, h.DateOfBirth)
		}
		byDOB[h.DateOfBirth] = append(byDOB[h.DateOfBirth], h.Name)
	}

	var groups []TwinGroup
	for _, dob := range order {
		if names := byDOB[dob]; len(names) > 1 {
			groups = append(groups, TwinGroup{DateOfBirth: dob, Names: names})
		}
	}
	return groups
}
