// Package match finds the normalized fee records that best fit a free-text
// school or department query. Matching runs as a strict fallback chain:
// exact normalized equality, then fuzzy similarity, then department
// substring containment. An empty result is a valid answer, never an error.
package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/jonesrussell/feescout/internal/domain"
)

// DefaultAcceptThreshold is the minimum similarity the fuzzy tier accepts.
// Inherited from the source system; boundary-sensitive, keep tunable.
const DefaultAcceptThreshold = 0.4

// schoolNoiseRx strips organizational prefixes that vary between how pages
// and students name the same school.
var schoolNoiseRx = regexp.MustCompile(`(college of|school of|faculty of)`)

// spaceRx collapses runs of whitespace.
var spaceRx = regexp.MustCompile(`\s+`)

// Matcher matches queries against a normalized fee table.
type Matcher struct {
	acceptThreshold float64
}

// New creates a Matcher. A non-positive threshold falls back to the default.
func New(acceptThreshold float64) *Matcher {
	if acceptThreshold <= 0 {
		acceptThreshold = DefaultAcceptThreshold
	}
	return &Matcher{acceptThreshold: acceptThreshold}
}

// NormalizeSchoolName lowercases, strips "college of"/"school of"/"faculty
// of", replaces "&" with "and", and collapses whitespace.
func NormalizeSchoolName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = schoolNoiseRx.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = spaceRx.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Match returns the subset of the table fitting the school query, falling
// back to the department query when supplied. The result is filtered to
// known units, deduplicated, and sorted by unit ascending then amount
// descending. All tiers exhausted yields an empty, valid result.
func (m *Matcher) Match(table []domain.FeeRecord, school, department string) []domain.FeeRecord {
	if len(table) == 0 || school == "" {
		return nil
	}

	query := NormalizeSchoolName(school)

	subset := exactTier(table, query)
	if len(subset) == 0 {
		subset = m.fuzzyTier(table, query)
	}
	if len(subset) == 0 && department != "" {
		subset = departmentTier(table, department)
	}

	subset = filterKnownUnits(subset)
	subset = dedupe(subset)
	sortResult(subset)

	return subset
}

// KeywordFilter is the caller-side fallback beyond the Matcher's tiers:
// plain case-insensitive substring containment of keyword within the
// program column of the full table.
func KeywordFilter(table []domain.FeeRecord, keyword string) []domain.FeeRecord {
	if keyword == "" {
		return nil
	}

	lower := strings.ToLower(keyword)
	var subset []domain.FeeRecord
	for _, rec := range table {
		if strings.Contains(strings.ToLower(rec.Program), lower) {
			subset = append(subset, rec)
		}
	}

	subset = filterKnownUnits(subset)
	subset = dedupe(subset)
	sortResult(subset)

	return subset
}

// exactTier matches on normalized school-name equality.
func exactTier(table []domain.FeeRecord, query string) []domain.FeeRecord {
	var subset []domain.FeeRecord
	for _, rec := range table {
		if NormalizeSchoolName(rec.School) == query {
			subset = append(subset, rec)
		}
	}
	return subset
}

// fuzzyTier picks the single most similar distinct school name and accepts
// it only when the similarity reaches the threshold.
func (m *Matcher) fuzzyTier(table []domain.FeeRecord, query string) []domain.FeeRecord {
	var (
		best     string
		bestSim  float64
		distinct = make(map[string]struct{})
	)

	for _, rec := range table {
		candidate := NormalizeSchoolName(rec.School)
		if candidate == "" {
			continue
		}
		if _, dup := distinct[candidate]; dup {
			continue
		}
		distinct[candidate] = struct{}{}

		sim := similarity(query, candidate)
		if sim > bestSim {
			bestSim = sim
			best = candidate
		}
	}

	if best == "" || bestSim < m.acceptThreshold {
		return nil
	}

	return exactTier(table, best)
}

// similarity scores two normalized names on a 0-1 scale as an edit-distance
// ratio. A Jaro-Winkler score would sit too high for unrelated strings to
// make a 0.4 cutoff meaningful.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}

	return 1 - float64(matchr.Levenshtein(a, b))/float64(longest)
}

// departmentTier matches by case-insensitive containment of the department
// string within the program field.
func departmentTier(table []domain.FeeRecord, department string) []domain.FeeRecord {
	lower := strings.ToLower(department)
	var subset []domain.FeeRecord
	for _, rec := range table {
		if strings.Contains(strings.ToLower(rec.Program), lower) {
			subset = append(subset, rec)
		}
	}
	return subset
}

// filterKnownUnits drops rows whose unit is not in the closed vocabulary.
// Precision matters to callers taking top-N figures; unknown units stay in
// the full table but never in match results.
func filterKnownUnits(records []domain.FeeRecord) []domain.FeeRecord {
	var out []domain.FeeRecord
	for _, rec := range records {
		if domain.IsKnownUnit(rec.Unit) {
			out = append(out, rec)
		}
	}
	return out
}

// dedupe collapses records sharing an identity key, keeping the first seen.
func dedupe(records []domain.FeeRecord) []domain.FeeRecord {
	seen := make(map[domain.RecordKey]struct{}, len(records))
	var out []domain.FeeRecord
	for _, rec := range records {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// sortResult orders by unit ascending then amount descending, so within
// each unit the highest amounts come first.
func sortResult(records []domain.FeeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Unit != records[j].Unit {
			return records[i].Unit < records[j].Unit
		}
		return records[i].Amount > records[j].Amount
	})
}
