package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/feescout/internal/domain"
)

// inlineBlockSelector lists the text blocks scanned for fee statements that
// never made it into a table, e.g. "Technology Fee: $240 per semester".
const inlineBlockSelector = "p, li, div, span"

// fallbackItem is used when no label text precedes an inline monetary match.
const fallbackItem = "Amount"

// Inline extracts FeeRecords from free-text blocks using the page-wide
// context. Only blocks containing a currency symbol qualify.
func Inline(p *Page, pctx domain.PageContext) []domain.FeeRecord {
	var records []domain.FeeRecord
	p.doc.Find(inlineBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		if rec, ok := blockRecord(blockText(sel), pctx); ok {
			records = append(records, rec)
		}
	})
	return records
}

// blockRecord builds one FeeRecord from a text block. Blocks without a
// currency symbol or without a parseable amount yield no record.
func blockRecord(line string, pctx domain.PageContext) (domain.FeeRecord, bool) {
	if line == "" || !strings.Contains(line, "$") {
		return domain.FeeRecord{}, false
	}

	loc := moneyRx.FindStringIndex(line)
	if loc == nil {
		return domain.FeeRecord{}, false
	}

	_, amount, ok := ExtractMoney(line)
	if !ok {
		return domain.FeeRecord{}, false
	}

	return domain.FeeRecord{
		Level:        pctx.Level,
		School:       pctx.School,
		Program:      pctx.Program,
		Label:        LineLabel(line),
		Item:         inlineItem(line[:loc[0]]),
		Amount:       amount,
		Unit:         DetectUnit(line),
		Notes:        line,
		AcademicYear: academicYearFor(pctx, line),
		SourceURL:    pctx.SourceURL,
	}, true
}

// inlineItem derives the item label from the text preceding the monetary
// match: the whole segment when it carries a fee keyword, else a bounded
// prefix of it, else the literal fallback.
func inlineItem(before string) string {
	before = strings.TrimSpace(before)
	if LooksLikeFeeLabel(before) {
		return before
	}

	runes := []rune(before)
	if len(runes) > maxInlineLabelLen {
		runes = runes[:maxInlineLabelLen]
	}
	if item := strings.TrimSpace(string(runes)); item != "" {
		return item
	}

	return fallbackItem
}
