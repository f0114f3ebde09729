// Package domain provides domain models used across the application.
package domain

// Level represents the academic level a crawl phase targets.
type Level string

const (
	// LevelUndergraduate marks records from the undergraduate crawl.
	LevelUndergraduate Level = "Undergraduate"
	// LevelGraduate marks records from the graduate crawl.
	LevelGraduate Level = "Graduate"
	// LevelUnknown marks records whose crawl phase is not known.
	LevelUnknown Level = "Unknown"
)

// Label classifies a fee record as tuition proper or an auxiliary fee.
type Label string

const (
	// LabelTuition marks tuition charges.
	LabelTuition Label = "Tuition"
	// LabelFee marks non-tuition fees.
	LabelFee Label = "Fee"
)

// Unit values form the closed billing-period vocabulary produced by
// normalization. Raw unit text that matches no keyword maps to UnitUnknown.
const (
	UnitPerYear     = "per_year"
	UnitPerSemester = "per_semester"
	UnitPerUnit     = "per_unit"
	UnitPerCredit   = "per_credit"
	UnitPerCourse   = "per_course"
	UnitPerTerm     = "per_term"
	UnitUnknown     = "unknown"
)

// KnownUnits lists every normalized unit except UnitUnknown, in the order
// callers filter against.
var KnownUnits = []string{
	UnitPerYear,
	UnitPerSemester,
	UnitPerUnit,
	UnitPerCredit,
	UnitPerCourse,
	UnitPerTerm,
}

// IsKnownUnit reports whether unit is a member of the normalized vocabulary
// other than UnitUnknown.
func IsKnownUnit(unit string) bool {
	for _, u := range KnownUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// PageContext carries page-level metadata derived once per page (or per
// section on graduate pages) and attached to every record extracted under it.
type PageContext struct {
	Level        Level
	School       string
	Program      string
	AcademicYear string
	SourceURL    string
}

// FeeRecord is one extracted (label, amount, unit) fact tied to a page
// context. Extractors create records; only the normalizer rewrites Amount
// and Unit afterwards.
type FeeRecord struct {
	Level        Level   `json:"level"`
	School       string  `json:"school"`
	Program      string  `json:"program,omitempty"`
	Label        Label   `json:"label"`
	Item         string  `json:"item"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	Notes        string  `json:"notes"`
	AcademicYear string  `json:"academic_year,omitempty"`
	SourceURL    string  `json:"source_url"`
}

// RecordKey is the identity key for duplicate detection. Records differing
// only in SourceURL or Notes share a key and collapse to the first seen.
type RecordKey struct {
	School       string
	Program      string
	Item         string
	Amount       float64
	Unit         string
	AcademicYear string
}

// Key returns the record's identity key.
func (r *FeeRecord) Key() RecordKey {
	return RecordKey{
		School:       r.School,
		Program:      r.Program,
		Item:         r.Item,
		Amount:       r.Amount,
		Unit:         r.Unit,
		AcademicYear: r.AcademicYear,
	}
}
