package output_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/feescout/internal/crawl"
	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/output"
)

func sampleRecords() []domain.FeeRecord {
	return []domain.FeeRecord{
		{
			Level:        domain.LevelUndergraduate,
			School:       "College of Engineering",
			Label:        domain.LabelTuition,
			Item:         "Undergraduate Tuition",
			Amount:       58924,
			Unit:         domain.UnitPerYear,
			Notes:        "Undergraduate Tuition | $58,924 per year",
			AcademicYear: "2025-26",
			SourceURL:    "https://site.test/ug.html",
		},
		{
			Level:     domain.LevelGraduate,
			School:    "Tepper School of Business",
			Program:   "MBA Program",
			Label:     domain.LabelTuition,
			Item:      "Tuition",
			Amount:    80000,
			Unit:      domain.UnitPerYear,
			SourceURL: "https://site.test/gr.html",
		},
	}
}

func TestWriteAndReadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, output.WriteJSON(path, sampleRecords()))

	records, err := output.ReadJSON(path)
	require.NoError(t, err)
	require.Equal(t, sampleRecords(), records)
}

func TestReadJSON_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := output.ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	ug := sampleRecords()[:1]
	gr := sampleRecords()[1:]

	merged := output.Merge(ug, gr)
	require.Len(t, merged, 2)
	require.Equal(t, domain.LevelUndergraduate, merged[0].Level, "undergraduate rows come first")
}

func TestRenderRecords_IncludesGraduateTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	output.RenderRecords(&buf, sampleRecords())

	out := buf.String()
	require.Contains(t, out, "is_graduate")
	require.Contains(t, out, "MBA Program")
	require.Contains(t, out, "true")
	require.Contains(t, out, "false")
}

func TestRenderStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	output.RenderStats(&buf, []crawl.Stats{
		{Source: "undergraduate", PagesVisited: 12, PagesFailed: 1, RowsExtracted: 87},
	})

	out := buf.String()
	require.Contains(t, out, "undergraduate")
	require.True(t, strings.Contains(out, "12") && strings.Contains(out, "87"))
}
