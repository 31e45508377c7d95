package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

// uriScheme is the custom URI scheme for Eredità resources.
const uriScheme = "eredita://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "heirs",
		Name:        "heirs",
		Description: "Heirs parsed from the documents, with twin groups and preliminary succession shares",
		MIMEType:    "application/json",
	}, s.handleHeirsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "assets",
		Name:        "assets",
		Description: "Assets parsed from the documents",
		MIMEType:    "application/json",
	}, s.handleAssetsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Files found in the document store by the last scan",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "The estate report maintained by the assistant",
		MIMEType:    "text/markdown",
	}, s.handleReportResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "notes",
		Name:        "notes",
		Description: "Corrections and facts saved from the conversation",
		MIMEType:    "application/json",
	}, s.handleNotesResource)
}

// handleHeirsResource returns the parsed heirs with derived groupings.
func (s *Server) handleHeirsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type heirsPayload struct {
		Heirs      []domain.HeirRecord     `json:"heirs"`
		Twins      []domain.TwinGroup      `json:"twins,omitempty"`
		Succession domain.SuccessionShares `json:"succession"`
	}

	payload := heirsPayload{Heirs: []domain.HeirRecord{}}
	if snapshot := s.ports.Snapshots.Current(); snapshot != nil {
		payload.Heirs = snapshot.Heirs
		payload.Twins = domain.FindTwins(snapshot.Heirs)
		payload.Succession = domain.ComputeSuccession(len(snapshot.Heirs))
	}

	return jsonResource(req.Params.URI, payload)
}

// handleAssetsResource returns the parsed assets.
func (s *Server) handleAssetsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	assets := []domain.AssetRecord{}
	if snapshot := s.ports.Snapshots.Current(); snapshot != nil {
		assets = snapshot.Assets
	}
	return jsonResource(req.Params.URI, assets)
}

// handleDocumentsResource returns the scanned document listing, without
// the extracted text.
func (s *Server) handleDocumentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type docInfo struct {
		Path      string `json:"path"`
		Folder    string `json:"folder"`
		SizeBytes uint64 `json:"size_bytes"`
		TextChars int    `json:"text_chars"`
	}

	infos := []docInfo{}
	if snapshot := s.ports.Snapshots.Current(); snapshot != nil {
		for i := range snapshot.Documents {
			doc := &snapshot.Documents[i]
			infos = append(infos, docInfo{
				Path:      doc.Path,
				Folder:    doc.Folder,
				SizeBytes: doc.SizeBytes,
				TextChars: len(doc.Text),
			})
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleReportResource renders the report sections as markdown.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var b strings.Builder
	if s.ports.Session != nil {
		for _, sec := range s.ports.Session.Reports() {
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", sec.Title, sec.Content)
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     b.String(),
		}},
	}, nil
}

// handleNotesResource returns the saved notes.
func (s *Server) handleNotesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	notes := []domain.Note{}
	if s.ports.Session != nil {
		notes = s.ports.Session.Notes()
	}
	return jsonResource(req.Params.URI, notes)
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
