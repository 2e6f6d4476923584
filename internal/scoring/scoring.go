// Package scoring computes the composite success-probability estimate from
// a grade set and a scoring policy.
package scoring

import (
	"math"

	"github.com/embrylab/blastograde/internal/models"
)

// SuccessProbability maps a validated grade set to a percentage in
// [0, policy ceiling]. The base score is the weighted grade sum scaled
// against the maximum possible weighted sum; fixed bonuses apply after
// scaling, then the result is clamped. Monotonically non-decreasing in each
// grade with the others held fixed. Never fails for a valid grade set.
func SuccessProbability(g models.GradeSet, policy models.ScoringPolicy) float64 {
	pct := BaseProbability(g, policy)

	if g.ICM >= 4 && g.TE >= 4 {
		pct += policy.PairBonus
	}
	if g.Exp == models.GradeMax {
		pct += policy.ExpansionBonus
	}

	pct = math.Min(pct, policy.Ceiling)
	return math.Max(pct, 0)
}

// BaseProbability returns the weighted percentage before bonuses and
// clamping. Exposed for report output that shows the unadjusted score.
func BaseProbability(g models.GradeSet, policy models.ScoringPolicy) float64 {
	weightSum := policy.WeightICM + policy.WeightTE + policy.WeightExp
	weighted := float64(g.ICM)*policy.WeightICM +
		float64(g.TE)*policy.WeightTE +
		float64(g.Exp)*policy.WeightExp
	return weighted / (float64(models.GradeMax) * weightSum) * 100
}
