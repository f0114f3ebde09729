package extract_test

import (
	"testing"

	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/extract"
)

func TestExtractMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		wantAmount float64
		wantOK     bool
	}{
		{"plain", "Tuition $58,924 per year", 58924, true},
		{"decimal", "Fee: $240.50 per semester", 240.50, true},
		{"space after symbol", "$ 1,234", 1234, true},
		{"no currency", "Tuition is billed per semester", 0, false},
		{"digits without symbol", "58924 per year", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, amount, ok := extract.ExtractMoney(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractMoney(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && amount != tt.wantAmount {
				t.Errorf("ExtractMoney(%q) amount = %v, want %v", tt.text, amount, tt.wantAmount)
			}
		})
	}
}

func TestDetectUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"$240 per semester", "per_semester"},
		{"$240 PER SEMESTER", "per_semester"},
		{"$58,924 per year", "per_year"},
		{"$790 per unit", "per_unit"},
		{"$1,200 per credit", "per_credit"},
		{"$2,400 per course", "per_course"},
		{"$3,100 per term", "per_term"},
		{"$240 each fall", domain.UnitUnknown},
	}

	for _, tt := range tests {
		if got := extract.DetectUnit(tt.text); got != tt.want {
			t.Errorf("DetectUnit(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectAcademicYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"url token", "https://www.example.edu/sfs/tuition-2526.html", "2025-26"},
		{"bare token", "rates for 2526 onward", "2025-26"},
		{"no token", "https://www.example.edu/sfs/tuition/index.html", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := extract.DetectAcademicYear(tt.text); got != tt.want {
				t.Errorf("DetectAcademicYear(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestLooksLikeFeeLabel(t *testing.T) {
	t.Parallel()

	positives := []string{"Technology Fee", "TUITION", "Student Activity", "health insurance", "Program charge"}
	for _, s := range positives {
		if !extract.LooksLikeFeeLabel(s) {
			t.Errorf("LooksLikeFeeLabel(%q) = false, want true", s)
		}
	}

	negatives := []string{"Fall 2025", "Room and Board", ""}
	for _, s := range negatives {
		if extract.LooksLikeFeeLabel(s) {
			t.Errorf("LooksLikeFeeLabel(%q) = true, want false", s)
		}
	}
}

func TestLineLabel(t *testing.T) {
	t.Parallel()

	if got := extract.LineLabel("Undergraduate Tuition | $58,924"); got != domain.LabelTuition {
		t.Errorf("LineLabel = %q, want %q", got, domain.LabelTuition)
	}
	if got := extract.LineLabel("Technology Fee | $240 per semester"); got != domain.LabelFee {
		t.Errorf("LineLabel = %q, want %q", got, domain.LabelFee)
	}
}

func TestIsProgramHeading(t *testing.T) {
	t.Parallel()

	positives := []string{"MBA Program", "MS in Computational Finance", "PhD Candidates", "Accelerated Master Track"}
	for _, s := range positives {
		if !extract.IsProgramHeading(s) {
			t.Errorf("IsProgramHeading(%q) = false, want true", s)
		}
	}

	if extract.IsProgramHeading("Billing Schedule") {
		t.Error("IsProgramHeading(\"Billing Schedule\") = true, want false")
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	if got := extract.CleanText("  Technology \n\t Fee  "); got != "Technology Fee" {
		t.Errorf("CleanText = %q, want %q", got, "Technology Fee")
	}
}
