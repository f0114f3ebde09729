package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/feescout/internal/domain"
)

// programWalkSelector covers everything the program-tagging pass cares
// about: program headings, tables, and free-text blocks, visited in
// document order.
const programWalkSelector = "h2, h3, strong, b, table, p, li, div"

// WithPrograms extracts FeeRecords from a graduate page in a single forward
// pass over the document, carrying a "current program" taken from the most
// recent heading-like element whose text names a program. The carried
// program holds for every table and text block until the next qualifying
// heading; pages without qualifying headings leave it unset.
func WithPrograms(p *Page, pctx domain.PageContext) []domain.FeeRecord {
	var records []domain.FeeRecord
	currentProgram := pctx.Program

	p.doc.Find(programWalkSelector).Each(func(_ int, sel *goquery.Selection) {
		node := goquery.NodeName(sel)

		switch node {
		case "h2", "h3", "strong", "b":
			text := CleanText(sel.Text())
			if len(text) >= minProgramHeadingLen && IsProgramHeading(text) {
				currentProgram = text
			}
		case "table":
			sctx := pctx
			sctx.Program = currentProgram
			records = append(records, tableRecords(sel, sctx)...)
		default:
			sctx := pctx
			sctx.Program = currentProgram
			if rec, ok := blockRecord(blockText(sel), sctx); ok {
				records = append(records, rec)
			}
		}
	})

	return records
}

// minProgramHeadingLen filters out decorative headings too short to name a
// program.
const minProgramHeadingLen = 3
