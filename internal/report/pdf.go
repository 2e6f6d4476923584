package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/embrylab/blastograde/internal/models"
)

// renderPDF lays the report sections out as a single-column A4 document.
// Content is identical to the text encoding; only the layout differs. The
// core PDF fonts cannot encode emoji, so decorative runes degrade to their
// closest latin-1 form via the translator.
func renderPDF(a *models.Analysis) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Blastocyst Grading Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Blastocyst Grading Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s    Analysis ID: %s",
		a.Timestamp.Format(time.RFC3339), a.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(a.Patient) > 0 {
		pdfSection(pdf, "Patient Information")
		pdf.SetFont("Helvetica", "", 10)
		for _, k := range sortedKeys(a.Patient) {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %s", k, a.Patient[k])), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	pdfSection(pdf, "Grading Results")
	pdfTableRow(pdf, true, "Parameter", "Grade")
	pdfTableRow(pdf, false, models.ParameterICM.DisplayName(), fmt.Sprintf("%d", a.Grades.ICM))
	pdfTableRow(pdf, false, models.ParameterTE.DisplayName(), fmt.Sprintf("%d", a.Grades.TE))
	pdfTableRow(pdf, false, models.ParameterExp.DisplayName(), fmt.Sprintf("%d", a.Grades.Exp))
	pdf.Ln(3)

	pdfSection(pdf, "Composite Metrics")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Average Grade: %.2f", a.Average), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Quality Band: %s", a.Band), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Success Probability: %.1f%%", a.SuccessProbability), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdfSection(pdf, "Clinical Analysis")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, tr(plainProse(a.Summary)), "", "L", false)
	for _, n := range a.Notes {
		pdf.MultiCell(0, 5, tr(plainProse(n.Text)), "", "L", false)
	}
	pdf.Ln(3)

	pdfSection(pdf, "Clinical Recommendations")
	for _, r := range a.Recommendations {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 5, tr(r.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(plainProse(r.Text)), "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(2)

	pdfSection(pdf, "Grading Criteria Reference")
	pdfTableRow(pdf, true, "Parameter / Grades", "Meaning")
	for _, c := range Criteria {
		pdfTableRow(pdf, false, tr(fmt.Sprintf("%s %s", c.Parameter, c.Range)), tr(c.Meaning))
	}
	pdf.Ln(3)

	pdfSection(pdf, "Disclaimer")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 4.5, tr(Disclaimer), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfSection(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func pdfTableRow(pdf *fpdf.Fpdf, header bool, left, right string) {
	if header {
		pdf.SetFont("Helvetica", "B", 10)
	} else {
		pdf.SetFont("Helvetica", "", 10)
	}
	pdf.CellFormat(80, 6, left, "1", 0, "L", false, 0, "")
	pdf.CellFormat(100, 6, right, "1", 1, "L", false, 0, "")
}

// plainProse strips the markdown emphasis markers and leading status emoji
// used by the note/summary content so prose reads cleanly in layouts that
// render neither markdown nor emoji.
func plainProse(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimLeft(s, "🟢🟡🔴✅⚠️❌️ ")
	return strings.TrimSpace(s)
}
