// Package models holds the core data types shared across the grading
// pipeline: grade sets, quality bands, analysis records, and the scoring
// policy.
package models

import "fmt"

// Grade bounds for every parameter. The classifier emits argmax indices
// shifted into this range.
const (
	GradeMin = 1
	GradeMax = 5
)

// Parameter identifies one of the three graded blastocyst parameters.
type Parameter string

const (
	ParameterICM Parameter = "icm"
	ParameterTE  Parameter = "te"
	ParameterExp Parameter = "exp"
)

// Parameters lists the graded parameters in report order. Every consumer
// that iterates grades must use this order so output stays deterministic.
var Parameters = []Parameter{ParameterICM, ParameterTE, ParameterExp}

// DisplayName returns the human-readable label used in reports.
func (p Parameter) DisplayName() string {
	switch p {
	case ParameterICM:
		return "Inner Cell Mass (ICM)"
	case ParameterTE:
		return "Trophectoderm (TE)"
	case ParameterExp:
		return "Expansion (EXP)"
	default:
		return string(p)
	}
}

// GradeSet is one classifier output: three ordinal grades, each in
// [GradeMin, GradeMax]. Immutable once produced.
type GradeSet struct {
	ICM int `json:"icm" yaml:"icm"`
	TE  int `json:"te" yaml:"te"`
	Exp int `json:"exp" yaml:"exp"`
}

// Grade returns the value for a single parameter.
func (g GradeSet) Grade(p Parameter) int {
	switch p {
	case ParameterICM:
		return g.ICM
	case ParameterTE:
		return g.TE
	case ParameterExp:
		return g.Exp
	}
	return 0
}

// Validate checks every grade is in range. It returns an *InvalidGradeError
// naming the first out-of-range parameter, so callers can reject input at
// the boundary before any derived computation runs.
func (g GradeSet) Validate() error {
	for _, p := range Parameters {
		v := g.Grade(p)
		if v < GradeMin || v > GradeMax {
			return &InvalidGradeError{Parameter: p, Value: v}
		}
	}
	return nil
}

// Average returns the plain (unweighted) mean of the three grades.
func (g GradeSet) Average() float64 {
	return float64(g.ICM+g.TE+g.Exp) / 3.0
}

func (g GradeSet) String() string {
	return fmt.Sprintf("ICM=%d TE=%d EXP=%d", g.ICM, g.TE, g.Exp)
}
