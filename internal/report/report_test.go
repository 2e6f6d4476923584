package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/models"
)

func testAnalysis(t *testing.T, g models.GradeSet) *models.Analysis {
	t.Helper()
	interp, err := interpret.New(models.DefaultScoringPolicy(),
		interpret.WithClock(func() time.Time {
			return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		}),
		interpret.WithIDSource(func() string { return "analysis-fixed" }),
	)
	require.NoError(t, err)

	a, err := interp.Analyze(g, models.PatientInfo{"patient_id": "P-042"})
	require.NoError(t, err)
	return a
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"text", FormatText},
		{"txt", FormatText},
		{"plain", FormatText},
		{"JSON", FormatJSON},
		{" csv ", FormatCSV},
		{"pdf", FormatPDF},
		{"html", FormatHTML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}
}

func TestParseFormat_Unknown(t *testing.T) {
	_, err := ParseFormat("docx")
	require.Error(t, err)

	var unsupported *models.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "docx", unsupported.Format)
	require.Contains(t, err.Error(), "docx")
}

func TestRender_UnknownFormat(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 3, TE: 3, Exp: 3})
	_, err := Render(a, Format("docx"))

	var unsupported *models.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
}

func TestRender_NilAnalysis(t *testing.T) {
	_, err := Render(nil, FormatJSON)
	require.Error(t, err)
}

func TestRender_Idempotent(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 4, TE: 3, Exp: 5})
	for _, f := range Formats {
		first, err := Render(a, f)
		require.NoError(t, err, f)
		second, err := Render(a, f)
		require.NoError(t, err, f)
		require.True(t, bytes.Equal(first, second), "format %s not deterministic", f)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	g := models.GradeSet{ICM: 4, TE: 2, Exp: 5}
	a := testAnalysis(t, g)

	data, err := Render(a, FormatJSON)
	require.NoError(t, err)

	doc, err := ParseJSON(data)
	require.NoError(t, err)

	require.Equal(t, g, doc.GradeSet())
	require.InDelta(t, a.Average, doc.Results.Average, 1e-9)
	require.InDelta(t, a.SuccessProbability, doc.Results.SuccessProbability, 1e-9)
	require.Equal(t, a.Band, doc.Results.Quality)
	require.Equal(t, a.ID, doc.ID)
	require.True(t, a.Timestamp.Equal(doc.Timestamp))
	require.Equal(t, a.Summary, doc.Summary)
	require.Equal(t, Disclaimer, doc.Disclaimer)
	require.Len(t, doc.Criteria, len(Criteria))
}

func TestCSV_Rows(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 3, TE: 4, Exp: 2})

	data, err := Render(a, FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Parameter", "Value"},
		{"ICM", "3"},
		{"TE", "4"},
		{"EXP", "2"},
		{"Average", "3.00"},
		{"Quality", a.Band.String()},
		{"Success Probability", fmt.Sprintf("%.1f%%", a.SuccessProbability)},
	}, records)
}

func TestText_Sections(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 2, TE: 2, Exp: 2})

	data, err := Render(a, FormatText)
	require.NoError(t, err)
	out := string(data)

	for _, section := range []string{
		"BLASTOCYST GRADING REPORT",
		"Patient Information",
		"Grading Results",
		"Composite Metrics",
		"Clinical Analysis",
		"Clinical Recommendations",
		"Grading Criteria Reference",
		"Disclaimer",
	} {
		require.Contains(t, out, section)
	}

	require.Contains(t, out, a.ID)
	require.Contains(t, out, "P-042")
	require.Contains(t, out, fmt.Sprintf("%.1f%%", a.SuccessProbability))
	require.Contains(t, out, Disclaimer)

	// All three concern blocks plus strategy and follow-up.
	for _, r := range a.Recommendations {
		require.Contains(t, out, r.Title)
		require.Contains(t, out, r.Text)
	}
	require.Equal(t, 5, len(a.Recommendations))
}

// TestFormatInvariance checks that the prose content carried by the text
// encoding matches what the JSON encoding carries for the same analysis.
func TestFormatInvariance(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 1, TE: 5, Exp: 3})

	jsonData, err := Render(a, FormatJSON)
	require.NoError(t, err)
	doc, err := ParseJSON(jsonData)
	require.NoError(t, err)

	textData, err := Render(a, FormatText)
	require.NoError(t, err)
	out := string(textData)

	require.Equal(t, a.Recommendations, doc.Recs)
	for _, r := range doc.Recs {
		require.Contains(t, out, r.Text)
	}
	for _, n := range doc.Notes {
		require.Contains(t, out, n.Text)
	}
	require.Contains(t, out, doc.Summary)
}

func TestPDF_Magic(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 4, TE: 4, Exp: 4})

	data, err := Render(a, FormatPDF)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.Greater(t, len(data), 1000)
}

func TestHTML_Content(t *testing.T) {
	a := testAnalysis(t, models.GradeSet{ICM: 5, TE: 5, Exp: 5})

	data, err := Render(a, FormatHTML)
	require.NoError(t, err)
	out := string(data)

	require.Contains(t, out, "<!DOCTYPE html>")
	require.Contains(t, out, "<table>")
	require.Contains(t, out, a.ID)
	require.Contains(t, out, Disclaimer)
	for _, r := range a.Recommendations {
		require.Contains(t, out, r.Title)
	}
}

func TestContentType(t *testing.T) {
	require.Equal(t, "application/json", FormatJSON.ContentType())
	require.Equal(t, "text/csv", FormatCSV.ContentType())
	require.Equal(t, "application/pdf", FormatPDF.ContentType())
	require.True(t, strings.HasPrefix(FormatHTML.ContentType(), "text/html"))
	require.True(t, strings.HasPrefix(FormatText.ContentType(), "text/plain"))
}

func TestPlainProse(t *testing.T) {
	require.Equal(t, "ICM: Good inner cell mass — likely healthy embryoblast.",
		plainProse("🟢 **ICM:** Good inner cell mass — likely healthy embryoblast."))
	require.Equal(t, "Overall: High-quality blastocyst — strong transfer candidate.",
		plainProse("✅ **Overall:** High-quality blastocyst — strong transfer candidate."))
}
