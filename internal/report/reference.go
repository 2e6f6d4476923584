package report

import "github.com/embrylab/blastograde/internal/models"

// CriteriaRow is one row of the fixed grading-criteria reference table.
type CriteriaRow struct {
	Parameter models.Parameter `json:"parameter"`
	Range     string           `json:"range"`
	Meaning   string           `json:"meaning"`
}

// Criteria is the grading-criteria reference shared verbatim across every
// output encoding. Immutable content — reports include it, nothing reads it
// back.
var Criteria = []CriteriaRow{
	{models.ParameterICM, "4–5", "Many tightly packed cells; healthy embryoblast"},
	{models.ParameterICM, "3", "Several loosely grouped cells; acceptable"},
	{models.ParameterICM, "1–2", "Very few cells; poor developmental potential"},
	{models.ParameterTE, "4–5", "Cohesive epithelium with many cells; strong implantation potential"},
	{models.ParameterTE, "3", "Loose epithelium with few cells; may still be viable"},
	{models.ParameterTE, "1–2", "Sparse, large cells; reduced implantation potential"},
	{models.ParameterExp, "4–5", "Expanded or hatching blastocyst; well developed"},
	{models.ParameterExp, "3", "Full blastocyst; cavity fills the embryo"},
	{models.ParameterExp, "1–2", "Early blastocyst; cavity under half the embryo volume"},
}

// Disclaimer is appended to every report encoding.
const Disclaimer = "This report is generated by an automated decision-support tool. " +
	"Grades and probability estimates are not calibrated clinical statistics and " +
	"must not replace assessment by a qualified embryologist. All transfer " +
	"decisions remain the responsibility of the treating clinical team."
