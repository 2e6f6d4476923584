package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/embrylab/blastograde/internal/models"
)

// renderText produces the sectioned plain-text report. Column widths are
// computed with runewidth so the tables stay aligned when values contain
// wide runes.
func renderText(a *models.Analysis) []byte {
	var b strings.Builder

	writeHeading(&b, "BLASTOCYST GRADING REPORT", '=')
	fmt.Fprintf(&b, "Generated:   %s\n", a.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Analysis ID: %s\n\n", a.ID)

	if len(a.Patient) > 0 {
		writeHeading(&b, "Patient Information", '-')
		for _, k := range sortedKeys(a.Patient) {
			fmt.Fprintf(&b, "  %s: %s\n", k, a.Patient[k])
		}
		b.WriteString("\n")
	}

	writeHeading(&b, "Grading Results", '-')
	writeTable(&b, [][]string{
		{"Parameter", "Grade"},
		{models.ParameterICM.DisplayName(), fmt.Sprintf("%d", a.Grades.ICM)},
		{models.ParameterTE.DisplayName(), fmt.Sprintf("%d", a.Grades.TE)},
		{models.ParameterExp.DisplayName(), fmt.Sprintf("%d", a.Grades.Exp)},
	})
	b.WriteString("\n")

	writeHeading(&b, "Composite Metrics", '-')
	fmt.Fprintf(&b, "  Average Grade:       %.2f\n", a.Average)
	fmt.Fprintf(&b, "  Quality Band:        %s\n", a.Band)
	fmt.Fprintf(&b, "  Success Probability: %.1f%%\n\n", a.SuccessProbability)

	writeHeading(&b, "Clinical Analysis", '-')
	fmt.Fprintf(&b, "  %s\n", a.Summary)
	for _, n := range a.Notes {
		fmt.Fprintf(&b, "  %s\n", n.Text)
	}
	b.WriteString("\n")

	writeHeading(&b, "Clinical Recommendations", '-')
	for _, r := range a.Recommendations {
		fmt.Fprintf(&b, "  [%s]\n", r.Title)
		fmt.Fprintf(&b, "  %s\n\n", r.Text)
	}

	writeHeading(&b, "Grading Criteria Reference", '-')
	rows := [][]string{{"Parameter", "Grades", "Meaning"}}
	for _, c := range Criteria {
		rows = append(rows, []string{string(c.Parameter), c.Range, c.Meaning})
	}
	writeTable(&b, rows)
	b.WriteString("\n")

	writeHeading(&b, "Disclaimer", '-')
	fmt.Fprintf(&b, "  %s\n", Disclaimer)

	return []byte(b.String())
}

func writeHeading(b *strings.Builder, title string, underline rune) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(string(underline), runewidth.StringWidth(title)))
	b.WriteString("\n")
}

func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		b.WriteString("  ")
		for i, cell := range row {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
