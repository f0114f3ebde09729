// Package normalize turns raw extracted fee records into the normalized
// table downstream consumers match against. It is a pure batch transform:
// coerce amounts, map raw units onto the closed vocabulary, drop duplicates.
package normalize

import (
	"math"
	"strings"

	"github.com/jonesrussell/feescout/internal/domain"
)

// unitRule maps a raw-unit keyword onto a normalized unit.
type unitRule struct {
	keyword string
	unit    string
}

// unitRules is the fixed priority list for unit classification; the first
// matching rule wins. The keywords are chosen so the rules stay mutually
// exclusive in practice.
var unitRules = []unitRule{
	{"per year", domain.UnitPerYear},
	{"annual", domain.UnitPerYear},
	{"yearly", domain.UnitPerYear},
	{"semester", domain.UnitPerSemester},
	{"unit", domain.UnitPerUnit},
	{"credit", domain.UnitPerCredit},
	{"course", domain.UnitPerCourse},
	{"term", domain.UnitPerTerm},
}

// Unit maps raw unit text onto the normalized vocabulary. Unrecognized text
// maps to domain.UnitUnknown; it is not an error.
func Unit(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	// Normalized forms like "per_semester" still carry their keyword, so
	// re-normalizing is a no-op.
	s = strings.ReplaceAll(s, "_", " ")

	for _, rule := range unitRules {
		if strings.Contains(s, rule.keyword) {
			return rule.unit
		}
	}
	return domain.UnitUnknown
}

// Records normalizes a batch of raw fee records: rows without a usable
// numeric amount are dropped, units are classified, and duplicates sharing
// an identity key collapse to the first seen. The input is not mutated.
func Records(records []domain.FeeRecord) []domain.FeeRecord {
	out := make([]domain.FeeRecord, 0, len(records))
	seen := make(map[domain.RecordKey]struct{}, len(records))

	for _, rec := range records {
		if !validAmount(rec.Amount) {
			continue
		}

		rec.Unit = Unit(rec.Unit)

		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, rec)
	}

	return out
}

// validAmount reports whether the coerced amount is a usable number.
func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}
