package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// Fact parsing is a best-effort, line-oriented scan over extracted document
// text. Malformed or non-matching lines are silently skipped, never an
// error, and records are never deduplicated across documents.
//
// The section-exit logic is deliberately asymmetric: the heir section is
// exited by an asset marker line, while the asset section never exits once
// entered. This mirrors the documents the family actually produces.

var (
	enumeratorRe = regexp.MustCompile(`^\d+[.)\s]+`)
	nameRe       = regexp.MustCompile(`^([A-Za-zÀ-ÿ]+)`)
	dobRe        = regexp.MustCompile(`\((\d{2}/\d{2}/\d{4})\)`)
	childrenRe   = regexp.MustCompile(`(\d+)\s+figli[oa]?e?`)
)

// assetMarkers are the section-header keywords that open the asset section.
var assetMarkers = []string{"immobili", "beni", "properties", "assets"}

// ParseHeirs extracts heir records from the documents. Each document is
// scanned independently; results are concatenated in document order.
func ParseHeirs(documents []domain.Document) []domain.HeirRecord {
	var heirs []domain.HeirRecord

	for _, doc := range documents {
		inHeirs := false
		for _, line := range strings.Split(doc.Text, "\n") {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)

			if strings.Contains(lower, "eredi") || strings.Contains(lower, "heirs") {
				inHeirs = true
				continue
			}
			if inHeirs && line != "" && line[0] >= '0' && line[0] <= '9' {
				if heir, ok := parseHeirLine(line); ok {
					heir.SourceFile = doc.Path
					heirs = append(heirs, heir)
				}
			} else if inHeirs && strings.Contains(lower, "immobili") {
				// Only an explicit asset marker exits the section;
				// blank lines do not.
				inHeirs = false
			}
		}
	}
	return heirs
}

// parseHeirLine parses a single enumerated heir line. A line yields no
// record when no name token is found.
func parseHeirLine(line string) (domain.HeirRecord, bool) {
	line = strings.TrimSpace(enumeratorRe.ReplaceAllString(line, ""))
	if line == "" {
		return domain.HeirRecord{}, false
	}
	lower := strings.ToLower(line)

	var heir domain.HeirRecord

	if m := nameRe.FindStringSubmatch(line); m != nil {
		heir.Name = m[1]
	}
	if m := dobRe.FindStringSubmatch(line); m != nil {
		heir.DateOfBirth = m[1]
	}

	switch {
	case strings.Contains(lower, "coniugat"),
		strings.Contains(lower, "married") && !strings.Contains(lower, "unmarried"):
		heir.MaritalStatus = "married"
		heir.MaritalStatusIT = "coniugato/a"
	case strings.Contains(lower, "stato libero"),
		strings.Contains(lower, "libero"),
		strings.Contains(lower, "unmarried"):
		heir.MaritalStatus = "unmarried"
		heir.MaritalStatusIT = "stato libero"
	case strings.Contains(lower, "vedov"),
		strings.Contains(lower, "widow"):
		heir.MaritalStatus = "widowed"
		heir.MaritalStatusIT = "vedovo/a"
	}

	if m := childrenRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			heir.NumChildren = &n
		}
	}

	heir.RawText = strings.TrimSpace(strings.TrimRight(line, ";"))

	if heir.Name == "" {
		return domain.HeirRecord{}, false
	}
	return heir, true
}

// ParseAssets extracts asset records from the documents. Once the asset
// section is entered, every subsequent non-empty, non-marker line becomes
// one record; the section never exits.
func ParseAssets(documents []domain.Document) []domain.AssetRecord {
	var assets []domain.AssetRecord

	for _, doc := range documents {
		inAssets := false
		for _, line := range strings.Split(doc.Text, "\n") {
			line = strings.TrimSpace(line)
			lower := strings.ToLower(line)

			if containsAny(lower, assetMarkers) {
				inAssets = true
				continue
			}
			if inAssets && line != "" {
				assets = append(assets, domain.AssetRecord{
					Description: strings.TrimSpace(strings.TrimRight(line, ";")),
					RawText:     line,
					SourceFile:  doc.Path,
				})
			}
		}
	}
	return assets
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
