package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/eredita-cli/internal/core/domain"
)

func setupReportTest(session *mockSessionReader, snapshot *domain.Snapshot) func() {
	oldSession := sessionReader
	oldSnapshots := snapshotSource
	sessionReader = session
	snapshotSource = &mockSnapshotSource{snapshot: snapshot}
	return func() {
		sessionReader = oldSession
		snapshotSource = oldSnapshots
	}
}

func TestReportCmd_PrintsSections(t *testing.T) {
	cleanup := setupReportTest(&mockSessionReader{
		reports: []domain.ReportSection{
			{
				ID:        "division_plan",
				Title:     "Division Plan",
				Content:   "Split three ways.",
				UpdatedAt: testDate(12),
			},
		},
	}, &domain.Snapshot{})
	defer cleanup()

	out, err := runCommand("report")

	assert.NoError(t, err)
	assert.Contains(t, out, "## Division Plan")
	assert.Contains(t, out, "Split three ways.")
	assert.Contains(t, out, "(updated 2026-03-12 10:00)")
}

func TestReportCmd_EmptyReport(t *testing.T) {
	cleanup := setupReportTest(&mockSessionReader{}, &domain.Snapshot{})
	defer cleanup()

	out, err := runCommand("report")

	assert.NoError(t, err)
	assert.Contains(t, out, "No report sections yet.")
}

func TestReportCmd_HeirsWithTwinsAndShares(t *testing.T) {
	two := 2
	cleanup := setupReportTest(&mockSessionReader{}, &domain.Snapshot{
		Heirs: []domain.HeirRecord{
			{Name: "Maria", DateOfBirth: "12/05/1970", MaritalStatusIT: "coniugato/a", NumChildren: &two},
			{Name: "Paolo", DateOfBirth: "12/05/1970"},
			{Name: "Anna", DateOfBirth: "03/01/1975"},
		},
	})
	defer cleanup()

	out, err := runCommand("report")

	assert.NoError(t, err)
	assert.Contains(t, out, "Heirs (3)")
	assert.Contains(t, out, "1. Maria, born 12/05/1970, coniugato/a")
	assert.Contains(t, out, "Twins (12/05/1970): Maria, Paolo")
	assert.Contains(t, out, "Legittima 2/3, disponibile 1/3, minimum 22.2% per heir")
}

func TestReportCmd_Assets(t *testing.T) {
	cleanup := setupReportTest(&mockSessionReader{}, &domain.Snapshot{
		Assets: []domain.AssetRecord{
			{Description: "appartamento a Milano"},
			{Description: "conto corrente Intesa"},
		},
	})
	defer cleanup()

	out, err := runCommand("report")

	assert.NoError(t, err)
	assert.Contains(t, out, "Assets (2)")
	assert.Contains(t, out, "- appartamento a Milano")
}

func TestReportCmd_NoSnapshotYet(t *testing.T) {
	cleanup := setupReportTest(&mockSessionReader{}, nil)
	defer cleanup()

	out, err := runCommand("report")

	assert.NoError(t, err)
	assert.Contains(t, out, "No scan has run yet")
}
