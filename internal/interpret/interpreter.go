// Package interpret turns a validated grade set into every human-readable
// interpretation artifact: quality band, per-parameter notes, composite
// probability, and structured recommendations. Every operation is a pure,
// deterministic function of its input — no I/O, no randomness, no shared
// mutable state, so concurrent callers need no coordination.
package interpret

import (
	"time"

	"github.com/google/uuid"

	"github.com/embrylab/blastograde/internal/models"
	"github.com/embrylab/blastograde/internal/scoring"
)

// Per-parameter note thresholds. The same three-way split applies to every
// parameter — clinical weighting asymmetry lives only in the scoring
// policy, never here.
const (
	notePositiveMin = 4
	noteNeutral     = 3
)

// Interpreter derives interpretation artifacts under a fixed scoring policy.
type Interpreter struct {
	policy models.ScoringPolicy
	now    func() time.Time
	newID  func() string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// WithIDSource overrides the analysis ID source. Used by tests.
func WithIDSource(newID func() string) Option {
	return func(i *Interpreter) { i.newID = newID }
}

// New creates an Interpreter with the given policy. A zero policy falls
// back to the documented defaults.
func New(policy models.ScoringPolicy, opts ...Option) (*Interpreter, error) {
	if policy == (models.ScoringPolicy{}) {
		policy = models.DefaultScoringPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	i := &Interpreter{
		policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Policy returns the scoring policy in effect.
func (i *Interpreter) Policy() models.ScoringPolicy {
	return i.policy
}

// Band classifies a grade set into its quality band.
func (i *Interpreter) Band(g models.GradeSet) (models.QualityBand, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	return models.BandOf(g), nil
}

// Summary returns the overall one-line summary for a grade set.
func (i *Interpreter) Summary(g models.GradeSet) (string, error) {
	band, err := i.Band(g)
	if err != nil {
		return "", err
	}
	return bandSummaries[band], nil
}

// Notes returns one note per parameter, in ICM, TE, EXP order. Each is an
// independent three-way classification with identical thresholds.
func (i *Interpreter) Notes(g models.GradeSet) ([]models.ParameterNote, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	notes := make([]models.ParameterNote, 0, len(models.Parameters))
	for _, p := range models.Parameters {
		tone := toneOf(g.Grade(p))
		notes = append(notes, models.ParameterNote{
			Parameter: p,
			Tone:      tone,
			Text:      parameterNotes[p][tone],
		})
	}
	return notes, nil
}

func toneOf(value int) models.Tone {
	switch {
	case value >= notePositiveMin:
		return models.TonePositive
	case value == noteNeutral:
		return models.ToneNeutral
	default:
		return models.ToneNegative
	}
}

// Recommendations returns the ordered recommendation blocks: the strategy
// block for the band, one concern block per parameter graded below 3 (in
// ICM, TE, EXP order), and the fixed follow-up block.
func (i *Interpreter) Recommendations(g models.GradeSet) ([]models.Recommendation, error) {
	band, err := i.Band(g)
	if err != nil {
		return nil, err
	}
	recs := []models.Recommendation{strategyBlocks[band]}
	for _, p := range models.Parameters {
		if g.Grade(p) < noteNeutral {
			recs = append(recs, concernBlocks[p])
		}
	}
	recs = append(recs, followUpBlock)
	return recs, nil
}

// Probability returns the composite success-probability estimate under the
// interpreter's policy.
func (i *Interpreter) Probability(g models.GradeSet) (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	return scoring.SuccessProbability(g, i.policy), nil
}

// Analyze runs the full pipeline and returns a timestamped analysis
// record. Validation happens once, up front; nothing is partially computed
// on invalid input.
func (i *Interpreter) Analyze(g models.GradeSet, patient models.PatientInfo) (*models.Analysis, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	band := models.BandOf(g)
	notes, _ := i.Notes(g)
	recs, _ := i.Recommendations(g)

	return &models.Analysis{
		ID:                 i.newID(),
		Timestamp:          i.now().UTC(),
		Patient:            patient,
		Grades:             g,
		Band:               band,
		Average:            g.Average(),
		SuccessProbability: scoring.SuccessProbability(g, i.policy),
		Summary:            bandSummaries[band],
		Notes:              notes,
		Recommendations:    recs,
	}, nil
}
