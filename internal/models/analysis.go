package models

import "time"

// Tone is the qualitative direction of a per-parameter note.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// ParameterNote is one per-parameter clinical observation.
type ParameterNote struct {
	Parameter Parameter `json:"parameter"`
	Tone      Tone      `json:"tone"`
	Text      string    `json:"text"`
}

// RecommendationKind distinguishes the recommendation blocks by role.
type RecommendationKind string

const (
	// RecommendationStrategy is the overall strategy block keyed off the
	// quality band. Always present, always first.
	RecommendationStrategy RecommendationKind = "strategy"
	// RecommendationConcern flags a single parameter graded below 3.
	RecommendationConcern RecommendationKind = "concern"
	// RecommendationFollowUp is the fixed follow-up actions block. Always
	// present, always last.
	RecommendationFollowUp RecommendationKind = "follow_up"
)

// Recommendation is one block of structured recommendation text.
type Recommendation struct {
	Kind      RecommendationKind `json:"kind"`
	Parameter Parameter          `json:"parameter,omitempty"`
	Title     string             `json:"title"`
	Text      string             `json:"text"`
}

// PatientInfo carries free-form patient metadata supplied by the caller.
// The grading core never interprets it; it only flows through to reports.
type PatientInfo map[string]string

// Analysis is a complete snapshot of one grading interpretation. Created
// once per request, never mutated afterwards.
type Analysis struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Patient   PatientInfo `json:"patient_info,omitempty"`

	Grades GradeSet    `json:"grades"`
	Band   QualityBand `json:"quality"`

	// Average is the unweighted mean of the three grades.
	Average float64 `json:"average"`
	// SuccessProbability is the weighted, bonus-adjusted, capped estimate in
	// [0, 100]. Not a calibrated clinical statistic.
	SuccessProbability float64 `json:"success_probability"`

	Summary         string           `json:"summary"`
	Notes           []ParameterNote  `json:"notes"`
	Recommendations []Recommendation `json:"recommendations"`
}
