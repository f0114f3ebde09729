// Package extract turns fetched page markup into FeeRecords. It hosts the
// tabular and inline extraction strategies plus the page-context tagging
// shared between them. Every heuristic here is a pure function over text so
// each tier stays independently testable.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/feescout/internal/domain"
)

var (
	// moneyRx matches a currency symbol followed by digit groups with an
	// optional two-decimal fraction, e.g. "$ 1,234.56".
	moneyRx = regexp.MustCompile(`\$\s*[\d,]+(?:\.\d{2})?`)

	// unitRx matches billing-period phrases like "per semester".
	unitRx = regexp.MustCompile(`(?i)per\s*(year|semester|unit|credit|course|term)`)

	// academicTokenRx matches 4-digit tokens read as two 2-digit year parts,
	// e.g. "2526" for academic year 2025-26.
	academicTokenRx = regexp.MustCompile(`\b(\d{2})(\d{2})\b`)

	// programRx recognizes program-indicative headings on graduate pages.
	programRx = regexp.MustCompile(`(?i)\b(MSCF|MISM|MSIT|MBA|MS|M\.S\.|Master|PhD|Doctor|Program|Track|Concentration)\b`)

	// spaceRx collapses runs of whitespace.
	spaceRx = regexp.MustCompile(`\s+`)
)

// feeKeywords mark a cell or text segment as a plausible fee label.
var feeKeywords = []string{"tuition", "fee", "fees", "health", "activity", "technology", "program"}

// maxInlineLabelLen bounds the fallback label taken from text preceding an
// inline monetary match.
const maxInlineLabelLen = 60

// CleanText trims s and collapses internal whitespace to single spaces.
func CleanText(s string) string {
	return strings.TrimSpace(spaceRx.ReplaceAllString(s, " "))
}

// ExtractMoney finds the first monetary pattern in text and parses it.
// It returns the raw matched token, the numeric amount, and whether a
// parseable amount was found.
func ExtractMoney(text string) (raw string, amount float64, ok bool) {
	raw = moneyRx.FindString(text)
	if raw == "" {
		return "", 0, false
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	amount, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return raw, 0, false
	}

	return raw, amount, true
}

// ContainsMoney reports whether text contains a monetary pattern.
func ContainsMoney(text string) bool {
	return moneyRx.MatchString(text)
}

// DetectUnit returns the raw billing-period unit found in text, in
// "per_<period>" form, or domain.UnitUnknown when no phrase matches.
func DetectUnit(text string) string {
	m := unitRx.FindStringSubmatch(text)
	if m == nil {
		return domain.UnitUnknown
	}
	return "per_" + strings.ToLower(m[1])
}

// DetectAcademicYear infers an academic year such as "2025-26" from the
// first 4-digit token in s, read as two consecutive 2-digit years. Returns
// "" when no token exists.
func DetectAcademicYear(s string) string {
	for _, m := range academicTokenRx.FindAllStringSubmatch(s, -1) {
		a, errA := strconv.Atoi(m[1])
		b, errB := strconv.Atoi(m[2])
		if errA != nil || errB != nil {
			continue
		}
		if a < 0 || a > 99 || b < 0 || b > 99 {
			continue
		}
		return "20" + m[1] + "-" + m[2]
	}
	return ""
}

// LooksLikeFeeLabel reports whether s contains a fee-indicative keyword.
func LooksLikeFeeLabel(s string) bool {
	lower := strings.ToLower(s)
	for _, k := range feeKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// LineLabel classifies a text line as tuition or fee by the literal presence
// of "tuition" anywhere in it.
func LineLabel(line string) domain.Label {
	if strings.Contains(strings.ToLower(line), "tuition") {
		return domain.LabelTuition
	}
	return domain.LabelFee
}

// IsProgramHeading reports whether heading text names a graduate program.
func IsProgramHeading(text string) bool {
	return programRx.MatchString(text)
}

// academicYearFor resolves the academic year for one extracted row: the page
// context wins when set, otherwise it is inferred from the source URL plus
// the row's text.
func academicYearFor(pctx domain.PageContext, line string) string {
	if pctx.AcademicYear != "" {
		return pctx.AcademicYear
	}
	return DetectAcademicYear(pctx.SourceURL + " " + line)
}
