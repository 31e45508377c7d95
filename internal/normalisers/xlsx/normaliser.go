// Package xlsx extracts text from Office Open XML spreadsheets.
package xlsx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles XLSX spreadsheets.
type Normaliser struct{}

// New creates a new XLSX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".xlsx"}
}

// Normalise renders every worksheet as lines of tab-separated cell
// values, in worksheet file order. Formatting, formulas and empty cells
// are dropped; only stored values survive.
func (n *Normaliser) Normalise(_ context.Context, _ string, content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return "", err
	}

	var sheets []string
	for _, file := range reader.File {
		if !strings.HasPrefix(file.Name, "xl/worksheets/") || !strings.HasSuffix(file.Name, ".xml") {
			continue
		}
		sheets = append(sheets, file.Name)
	}
	sort.Strings(sheets)

	var result strings.Builder
	for _, name := range sheets {
		text, err := readSheet(reader, name, shared)
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(text)
	}
	return result.String(), nil
}

// sharedStringsXML represents xl/sharedStrings.xml. Each si may hold one
// t element or several rich-text runs.
type sharedStringsXML struct {
	Items []struct {
		Text string   `xml:"t"`
		Runs []string `xml:"r>t"`
	} `xml:"si"`
}

func readSharedStrings(reader *zip.Reader) ([]string, error) {
	content, ok, err := readZipFile(reader, "xl/sharedStrings.xml")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var parsed sharedStringsXML
	if err := xml.Unmarshal(content, &parsed); err != nil {
		return nil, domain.ErrInvalidInput
	}

	strs := make([]string, len(parsed.Items))
	for i, item := range parsed.Items {
		if len(item.Runs) > 0 {
			strs[i] = strings.Join(item.Runs, "")
		} else {
			strs[i] = item.Text
		}
	}
	return strs, nil
}

// worksheetXML represents one xl/worksheets/sheetN.xml.
type worksheetXML struct {
	Rows []struct {
		Cells []cellXML `xml:"c"`
	} `xml:"sheetData>row"`
}

type cellXML struct {
	Type   string `xml:"t,attr"`
	Value  string `xml:"v"`
	Inline string `xml:"is>t"`
}

func readSheet(reader *zip.Reader, name string, shared []string) (string, error) {
	content, ok, err := readZipFile(reader, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	var sheet worksheetXML
	if err := xml.Unmarshal(content, &sheet); err != nil {
		return "", domain.ErrInvalidInput
	}

	var lines []string
	for _, row := range sheet.Rows {
		var cells []string
		for _, c := range row.Cells {
			if v := cellValue(c, shared); v != "" {
				cells = append(cells, v)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, "\t"))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// cellValue resolves a cell to its display text. Shared-string cells
// index into the shared table; inline and literal cells carry their own.
func cellValue(c cellXML, shared []string) string {
	switch c.Type {
	case "s":
		i, err := strconv.Atoi(c.Value)
		if err != nil || i < 0 || i >= len(shared) {
			return ""
		}
		return shared[i]
	case "inlineStr":
		return c.Inline
	default:
		return c.Value
	}
}

func readZipFile(reader *zip.Reader, name string) ([]byte, bool, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, false, domain.ErrInvalidInput
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, false, domain.ErrInvalidInput
		}
		return content, true, nil
	}
	return nil, false, nil
}
