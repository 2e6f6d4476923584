package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/embrylab/blastograde/internal/models"
)

// JSONReport is the wire shape of the JSON encoding. Flat at the top level,
// with the grade results grouped under "results" so downstream systems can
// pull the numbers without touching the prose.
type JSONReport struct {
	ID         string                  `json:"id"`
	Timestamp  time.Time               `json:"timestamp"`
	Patient    models.PatientInfo      `json:"patient_info,omitempty"`
	Results    JSONResults             `json:"results"`
	Summary    string                  `json:"summary"`
	Notes      []models.ParameterNote  `json:"notes"`
	Recs       []models.Recommendation `json:"recommendations"`
	Criteria   []CriteriaRow           `json:"criteria"`
	Disclaimer string                  `json:"disclaimer"`
}

// JSONResults groups the numeric grading results.
type JSONResults struct {
	ICM                int                `json:"icm"`
	TE                 int                `json:"te"`
	Exp                int                `json:"exp"`
	Average            float64            `json:"average"`
	Quality            models.QualityBand `json:"quality"`
	SuccessProbability float64            `json:"success_probability"`
}

func renderJSON(a *models.Analysis) ([]byte, error) {
	doc := JSONReport{
		ID:        a.ID,
		Timestamp: a.Timestamp,
		Patient:   a.Patient,
		Results: JSONResults{
			ICM:                a.Grades.ICM,
			TE:                 a.Grades.TE,
			Exp:                a.Grades.Exp,
			Average:            a.Average,
			Quality:            a.Band,
			SuccessProbability: a.SuccessProbability,
		},
		Summary:    a.Summary,
		Notes:      a.Notes,
		Recs:       a.Recommendations,
		Criteria:   Criteria,
		Disclaimer: Disclaimer,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON report: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseJSON decodes a JSON report payload. Round-trip guarantee: the grades
// come back exactly and the average within floating-point tolerance.
func ParseJSON(data []byte) (*JSONReport, error) {
	var doc JSONReport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON report: %w", err)
	}
	return &doc, nil
}

// GradeSet reconstructs the grade set from a parsed JSON report.
func (r *JSONReport) GradeSet() models.GradeSet {
	return models.GradeSet{ICM: r.Results.ICM, TE: r.Results.TE, Exp: r.Results.Exp}
}
