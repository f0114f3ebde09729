package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/feescout/internal/domain"
)

// cellSeparator joins non-empty cell texts into one candidate line.
const cellSeparator = " | "

// Tables extracts FeeRecords from every tabular structure on the page using
// the page-wide context. Structures that yield no parseable rows are skipped,
// not failed; rows without a monetary match are discarded.
func Tables(p *Page, pctx domain.PageContext) []domain.FeeRecord {
	var records []domain.FeeRecord
	p.doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		records = append(records, tableRecords(tbl, pctx)...)
	})
	return records
}

// tableRecords extracts records from a single table selection.
func tableRecords(tbl *goquery.Selection, pctx domain.PageContext) []domain.FeeRecord {
	var records []domain.FeeRecord

	tbl.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := rowCells(row)
		if len(cells) == 0 {
			return
		}

		line := strings.Join(cells, cellSeparator)
		if rec, ok := rowRecord(cells, line, pctx); ok {
			records = append(records, rec)
		}
	})

	return records
}

// rowCells collects the cleaned, non-empty cell texts of a table row.
func rowCells(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		if text := blockText(cell); text != "" {
			cells = append(cells, text)
		}
	})
	return cells
}

// rowRecord builds one FeeRecord from a table row's cells. Rows without a
// parseable monetary value yield no record.
func rowRecord(cells []string, line string, pctx domain.PageContext) (domain.FeeRecord, bool) {
	_, amount, ok := ExtractMoney(line)
	if !ok {
		return domain.FeeRecord{}, false
	}

	return domain.FeeRecord{
		Level:        pctx.Level,
		School:       pctx.School,
		Program:      pctx.Program,
		Label:        LineLabel(line),
		Item:         rowItem(cells),
		Amount:       amount,
		Unit:         DetectUnit(line),
		Notes:        line,
		AcademicYear: academicYearFor(pctx, line),
		SourceURL:    pctx.SourceURL,
	}, true
}

// rowItem picks the row's textual label: the first cell that is not itself a
// monetary value and carries a fee-indicative keyword, else the first cell.
func rowItem(cells []string) string {
	for _, cell := range cells {
		if ContainsMoney(cell) {
			continue
		}
		if LooksLikeFeeLabel(cell) {
			return cell
		}
	}
	return cells[0]
}
