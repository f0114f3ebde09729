package normalize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/normalize"
)

func TestUnit_KeywordPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"per year", domain.UnitPerYear},
		{"Annual charge", domain.UnitPerYear},
		{"billed yearly", domain.UnitPerYear},
		{"per_semester", domain.UnitPerSemester},
		{"Per Semester", domain.UnitPerSemester},
		{"each fall semester", domain.UnitPerSemester},
		{"per unit", domain.UnitPerUnit},
		{"per credit hour", domain.UnitPerCredit},
		{"per course", domain.UnitPerCourse},
		{"per term", domain.UnitPerTerm},
		{"one-time", domain.UnitUnknown},
		{"", domain.UnitUnknown},
	}

	for _, tt := range tests {
		if got := normalize.Unit(tt.raw); got != tt.want {
			t.Errorf("Unit(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestUnit_NormalizationIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, unit := range domain.KnownUnits {
		require.Equal(t, unit, normalize.Unit(unit))
	}
	require.Equal(t, domain.UnitUnknown, normalize.Unit(domain.UnitUnknown))
}

func record(item string, amount float64, unit, sourceURL string) domain.FeeRecord {
	return domain.FeeRecord{
		Level:        domain.LevelUndergraduate,
		School:       "Engineering",
		Item:         item,
		Label:        domain.LabelFee,
		Amount:       amount,
		Unit:         unit,
		AcademicYear: "2025-26",
		SourceURL:    sourceURL,
	}
}

func TestRecords_DropsUnusableAmounts(t *testing.T) {
	t.Parallel()

	in := []domain.FeeRecord{
		record("Technology Fee", 240, "per semester", "https://a"),
		record("Broken", math.NaN(), "per semester", "https://a"),
		record("Negative", -5, "per semester", "https://a"),
	}

	out := normalize.Records(in)
	require.Len(t, out, 1)
	require.Equal(t, "Technology Fee", out[0].Item)
	require.Equal(t, domain.UnitPerSemester, out[0].Unit)
}

func TestRecords_CollapsesSourceURLDuplicates(t *testing.T) {
	t.Parallel()

	in := []domain.FeeRecord{
		record("Technology Fee", 240, "per semester", "https://a"),
		record("Technology Fee", 240, "per semester", "https://b"),
	}

	out := normalize.Records(in)
	require.Len(t, out, 1)
	require.Equal(t, "https://a", out[0].SourceURL, "first occurrence wins")
}

func TestRecords_DeduplicationIsIdempotent(t *testing.T) {
	t.Parallel()

	in := []domain.FeeRecord{
		record("Technology Fee", 240, "per semester", "https://a"),
		record("Technology Fee", 240, "per semester", "https://b"),
		record("Activity Fee", 150, "per semester", "https://a"),
	}

	once := normalize.Records(in)
	twice := normalize.Records(once)
	require.Equal(t, once, twice)
}

func TestRecords_DistinctUnitsSurvive(t *testing.T) {
	t.Parallel()

	in := []domain.FeeRecord{
		record("Tuition", 58924, "per year", "https://a"),
		record("Tuition", 58924, "per unit", "https://a"),
	}

	out := normalize.Records(in)
	require.Len(t, out, 2, "same amount under different units is not a duplicate")
}
