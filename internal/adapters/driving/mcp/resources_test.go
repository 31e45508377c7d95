package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newTestServer(t *testing.T, snapshot *domain.Snapshot, session *mockSessionReader) *Server {
	t.Helper()
	ports := &Ports{
		Chat:      &mockChatService{},
		Snapshots: &mockSnapshotSource{snapshot: snapshot},
	}
	if session != nil {
		ports.Session = session
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleHeirsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("includes twins and succession shares", func(t *testing.T) {
		server := newTestServer(t, &domain.Snapshot{
			Heirs: []domain.HeirRecord{
				{Name: "Maria", DateOfBirth: "12/05/1970"},
				{Name: "Paolo", DateOfBirth: "12/05/1970"},
				{Name: "Anna"},
			},
		}, nil)

		result, err := server.handleHeirsResource(ctx, readRequest(uriScheme+"heirs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var payload struct {
			Heirs      []domain.HeirRecord     `json:"heirs"`
			Twins      []domain.TwinGroup      `json:"twins"`
			Succession domain.SuccessionShares `json:"succession"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
		assert.Len(t, payload.Heirs, 3)
		require.Len(t, payload.Twins, 1)
		assert.Equal(t, []string{"Maria", "Paolo"}, payload.Twins[0].Names)
		assert.Equal(t, "2/3", payload.Succession.Legittima)
	})

	t.Run("nil snapshot yields empty list", func(t *testing.T) {
		server := newTestServer(t, nil, nil)

		result, err := server.handleHeirsResource(ctx, readRequest(uriScheme+"heirs"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"heirs": []`)
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	server := newTestServer(t, &domain.Snapshot{
		Documents: []domain.Document{
			{Path: "eredi/lista.txt", Folder: "eredi", SizeBytes: 120, Text: "Maria"},
		},
	}, nil)

	result, err := server.handleDocumentsResource(context.Background(), readRequest(uriScheme+"documents"))

	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"path": "eredi/lista.txt"`)
	assert.Contains(t, result.Contents[0].Text, `"text_chars": 5`)
	// Extracted text itself is not exposed through the listing.
	assert.NotContains(t, result.Contents[0].Text, "Maria")
}

func TestServer_handleReportResource(t *testing.T) {
	t.Run("renders sections as markdown", func(t *testing.T) {
		server := newTestServer(t, nil, &mockSessionReader{
			reports: []domain.ReportSection{
				{ID: "plan", Title: "Division Plan", Content: "Split equally."},
			},
		})

		result, err := server.handleReportResource(context.Background(), readRequest(uriScheme+"report"))

		require.NoError(t, err)
		assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "## Division Plan\n\nSplit equally.")
	})

	t.Run("nil session yields empty report", func(t *testing.T) {
		server := newTestServer(t, nil, nil)

		result, err := server.handleReportResource(context.Background(), readRequest(uriScheme+"report"))

		require.NoError(t, err)
		assert.Empty(t, result.Contents[0].Text)
	})
}

func TestServer_handleNotesResource(t *testing.T) {
	server := newTestServer(t, nil, &mockSessionReader{
		notes: []domain.Note{{Note: "Paolo has 3 children"}},
	})

	result, err := server.handleNotesResource(context.Background(), readRequest(uriScheme+"notes"))

	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "Paolo has 3 children")
}
