// Package output renders and serializes the normalized fee table for the
// CLI. The core pipeline only ever produces the in-memory table; everything
// here is the display/serialization collaborator consuming it verbatim.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/feescout/internal/crawl"
	"github.com/jonesrussell/feescout/internal/domain"
)

// Columns is the ordered output schema of the normalized table.
var Columns = []string{
	"level", "school", "program", "label", "item",
	"amount", "unit", "notes", "academic_year", "source_url",
}

// maxNotesWidth truncates the audit notes column when rendering; the full
// text survives in the serialized dataset.
const maxNotesWidth = 40

// Merge concatenates per-level tables into one, undergraduate first. The
// merged table is where the is_graduate tag becomes meaningful.
func Merge(tables ...[]domain.FeeRecord) []domain.FeeRecord {
	var merged []domain.FeeRecord
	for _, t := range tables {
		merged = append(merged, t...)
	}
	return merged
}

// RenderRecords writes the records as a formatted table.
func RenderRecords(w io.Writer, records []domain.FeeRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{}
	for _, col := range Columns {
		header = append(header, col)
	}
	header = append(header, "is_graduate")
	t.AppendHeader(header)

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Level,
			rec.School,
			rec.Program,
			rec.Label,
			rec.Item,
			fmt.Sprintf("%.2f", rec.Amount),
			rec.Unit,
			truncate(rec.Notes, maxNotesWidth),
			rec.AcademicYear,
			rec.SourceURL,
			rec.Level == domain.LevelGraduate,
		})
	}

	t.Render()
}

// RenderStats writes the per-run crawl summary as a formatted table.
func RenderStats(w io.Writer, stats []crawl.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Pages Visited", "Pages Failed", "Rows Extracted"})

	for _, s := range stats {
		t.AppendRow(table.Row{s.Source, s.PagesVisited, s.PagesFailed, s.RowsExtracted})
	}

	t.Render()
}

// dataset is the on-disk JSON shape produced by `crawl --output` and read
// back by `match --input`.
type dataset struct {
	Records []domain.FeeRecord `json:"records"`
}

// WriteJSON serializes the normalized table to path.
func WriteJSON(path string, records []domain.FeeRecord) error {
	data, err := json.MarshalIndent(dataset{Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %q: %w", path, err)
	}

	return nil
}

// ReadJSON loads a serialized dataset from path.
func ReadJSON(path string) ([]domain.FeeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}

	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %q: %w", path, err)
	}

	return ds.Records, nil
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
