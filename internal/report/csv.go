package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/embrylab/blastograde/internal/models"
)

// renderCSV produces the minimal flat parameter/value table. No nesting;
// prose stays in the other encodings.
func renderCSV(a *models.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Parameter", "Value"},
		{"ICM", fmt.Sprintf("%d", a.Grades.ICM)},
		{"TE", fmt.Sprintf("%d", a.Grades.TE)},
		{"EXP", fmt.Sprintf("%d", a.Grades.Exp)},
		{"Average", fmt.Sprintf("%.2f", a.Average)},
		{"Quality", a.Band.String()},
		{"Success Probability", fmt.Sprintf("%.1f%%", a.SuccessProbability)},
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("writing CSV report: %w", err)
	}
	return buf.Bytes(), nil
}
