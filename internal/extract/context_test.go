package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/extract"
)

const graduatePageHTML = `<!DOCTYPE html>
<html>
<head><title>Tepper School of Business</title></head>
<body>
  <h1>Tepper School of Business</h1>

  <h2>MBA Program</h2>
  <table>
    <tr><td>Tuition</td><td>$80,000 per year</td></tr>
  </table>
  <p>Graduate Activity Fee: $120 per semester.</p>

  <h3>Billing Schedule</h3>
  <p>Invoices are issued in July and November.</p>

  <h2>MS in Computational Finance</h2>
  <table>
    <tr><td>Tuition</td><td>$2,400 per credit</td></tr>
  </table>
</body>
</html>`

func graduateContext() domain.PageContext {
	return domain.PageContext{
		Level:     domain.LevelGraduate,
		School:    "Tepper School of Business",
		SourceURL: "https://www.example.edu/sfs/tuition/graduate/tepper.html",
	}
}

func TestWithPrograms_CarriesNearestHeading(t *testing.T) {
	t.Parallel()

	records := extract.WithPrograms(parseTestPage(t, graduatePageHTML), graduateContext())
	require.NotEmpty(t, records)

	byItemAmount := func(amount float64) domain.FeeRecord {
		for _, rec := range records {
			if rec.Amount == amount {
				return rec
			}
		}
		t.Fatalf("no record with amount %v", amount)
		return domain.FeeRecord{}
	}

	require.Equal(t, "MBA Program", byItemAmount(80000).Program)
	require.Equal(t, "MBA Program", byItemAmount(120).Program,
		"inline fee under the MBA heading inherits its program")
	require.Equal(t, "MS in Computational Finance", byItemAmount(2400).Program)
}

func TestWithPrograms_NonQualifyingHeadingDoesNotReset(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
	  <h2>PhD Economics</h2>
	  <h3>Payment Details</h3>
	  <p>Dissertation Fee: $300 per semester.</p>
	</body></html>`

	records := extract.WithPrograms(parseTestPage(t, html), graduateContext())
	require.NotEmpty(t, records)
	require.Equal(t, "PhD Economics", records[0].Program,
		"a non-program heading must not clear the carried program")
}

func TestWithPrograms_NoHeadingLeavesProgramUnset(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
	  <p>General Fee: $50 per term.</p>
	</body></html>`

	records := extract.WithPrograms(parseTestPage(t, html), graduateContext())
	require.NotEmpty(t, records)
	require.Empty(t, records[0].Program)
}

func TestPageSchool_HeadingPriority(t *testing.T) {
	t.Parallel()

	const h1HTML = `<html><head><title>Fallback Title</title></head>
	  <body><h1>College of Engineering</h1></body></html>`
	require.Equal(t, "College of Engineering", parseTestPage(t, h1HTML).School("Default"))

	const titleHTML = `<html><head><title>Student Financial Services</title></head><body></body></html>`
	require.Equal(t, "Student Financial Services", parseTestPage(t, titleHTML).School("Default"))

	const emptyHTML = `<html><head></head><body></body></html>`
	require.Equal(t, "Default", parseTestPage(t, emptyHTML).School("Default"))
}
