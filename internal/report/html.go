package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/embrylab/blastograde/internal/models"
)

var htmlMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// renderHTML builds the report as GFM markdown — the note and
// recommendation prose already uses markdown emphasis — and converts it
// with goldmark, wrapped in a minimal page shell.
func renderHTML(a *models.Analysis) ([]byte, error) {
	var md strings.Builder

	md.WriteString("# Blastocyst Grading Report\n\n")
	fmt.Fprintf(&md, "Generated: %s · Analysis ID: `%s`\n\n",
		a.Timestamp.Format(time.RFC3339), a.ID)

	if len(a.Patient) > 0 {
		md.WriteString("## Patient Information\n\n")
		for _, k := range sortedKeys(a.Patient) {
			fmt.Fprintf(&md, "- **%s:** %s\n", k, a.Patient[k])
		}
		md.WriteString("\n")
	}

	md.WriteString("## Grading Results\n\n")
	md.WriteString("| Parameter | Grade |\n|---|---|\n")
	fmt.Fprintf(&md, "| %s | %d |\n", models.ParameterICM.DisplayName(), a.Grades.ICM)
	fmt.Fprintf(&md, "| %s | %d |\n", models.ParameterTE.DisplayName(), a.Grades.TE)
	fmt.Fprintf(&md, "| %s | %d |\n\n", models.ParameterExp.DisplayName(), a.Grades.Exp)

	md.WriteString("## Composite Metrics\n\n")
	fmt.Fprintf(&md, "- Average Grade: **%.2f**\n", a.Average)
	fmt.Fprintf(&md, "- Quality Band: **%s**\n", a.Band)
	fmt.Fprintf(&md, "- Success Probability: **%.1f%%**\n\n", a.SuccessProbability)

	md.WriteString("## Clinical Analysis\n\n")
	fmt.Fprintf(&md, "%s\n\n", a.Summary)
	for _, n := range a.Notes {
		fmt.Fprintf(&md, "- %s\n", n.Text)
	}
	md.WriteString("\n")

	md.WriteString("## Clinical Recommendations\n\n")
	for _, r := range a.Recommendations {
		fmt.Fprintf(&md, "### %s\n\n%s\n\n", r.Title, r.Text)
	}

	md.WriteString("## Grading Criteria Reference\n\n")
	md.WriteString("| Parameter | Grades | Meaning |\n|---|---|---|\n")
	for _, c := range Criteria {
		fmt.Fprintf(&md, "| %s | %s | %s |\n", c.Parameter, c.Range, c.Meaning)
	}
	md.WriteString("\n")

	fmt.Fprintf(&md, "## Disclaimer\n\n*%s*\n", Disclaimer)

	var body bytes.Buffer
	if err := htmlMarkdown.Convert([]byte(md.String()), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML report: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	page.WriteString("<title>Blastocyst Grading Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
