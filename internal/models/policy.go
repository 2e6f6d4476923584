package models

import "fmt"

// Default scoring policy values. These are the single source of truth —
// DefaultScoringPolicy references them and no other code should duplicate
// them. The weights favor trophectoderm slightly, following the clinical
// convention that TE quality is the stronger implantation predictor; the
// bonus and ceiling values are tuning constants carried over from earlier
// revisions of the tool and are deliberately overridable.
const (
	DefaultWeightICM = 0.35
	DefaultWeightTE  = 0.40
	DefaultWeightExp = 0.25

	DefaultPairBonus      = 10.0
	DefaultExpansionBonus = 5.0
	DefaultCeiling        = 95.0
)

// ScoringPolicy configures the composite success-probability computation.
// Weights are relative: they are normalized by their sum, so {1,1,1} is the
// plain mean. Read-only policy data at runtime.
type ScoringPolicy struct {
	WeightICM float64 `yaml:"weight_icm" json:"weight_icm"`
	WeightTE  float64 `yaml:"weight_te" json:"weight_te"`
	WeightExp float64 `yaml:"weight_exp" json:"weight_exp"`

	// PairBonus is added when both ICM and TE are 4 or above.
	PairBonus float64 `yaml:"pair_bonus" json:"pair_bonus"`
	// ExpansionBonus is added when expansion is at the maximum grade.
	ExpansionBonus float64 `yaml:"expansion_bonus" json:"expansion_bonus"`
	// Ceiling caps the final percentage so the tool never implies certainty.
	Ceiling float64 `yaml:"ceiling" json:"ceiling"`
}

// DefaultScoringPolicy returns the documented default policy.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		WeightICM:      DefaultWeightICM,
		WeightTE:       DefaultWeightTE,
		WeightExp:      DefaultWeightExp,
		PairBonus:      DefaultPairBonus,
		ExpansionBonus: DefaultExpansionBonus,
		Ceiling:        DefaultCeiling,
	}
}

// Validate rejects policies that would make the probability computation
// meaningless.
func (p ScoringPolicy) Validate() error {
	if p.WeightICM <= 0 || p.WeightTE <= 0 || p.WeightExp <= 0 {
		return fmt.Errorf("scoring weights must be positive (got icm=%.2f te=%.2f exp=%.2f)",
			p.WeightICM, p.WeightTE, p.WeightExp)
	}
	if p.PairBonus < 0 || p.ExpansionBonus < 0 {
		return fmt.Errorf("scoring bonuses must not be negative (got pair=%.2f expansion=%.2f)",
			p.PairBonus, p.ExpansionBonus)
	}
	if p.Ceiling <= 0 || p.Ceiling > 100 {
		return fmt.Errorf("scoring ceiling must be in (0, 100] (got %.2f)", p.Ceiling)
	}
	return nil
}
