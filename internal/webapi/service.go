package webapi

import (
	"fmt"
	"sort"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/models"
)

// AnalysisService runs the interpreter over submitted grades and keeps the
// results in the injected history store.
type AnalysisService struct {
	interp *interpret.Interpreter
	store  history.Store
}

// NewAnalysisService wires an interpreter to a history store.
func NewAnalysisService(interp *interpret.Interpreter, store history.Store) *AnalysisService {
	return &AnalysisService{interp: interp, store: store}
}

// Analyze validates, interprets, and records one grade set.
func (s *AnalysisService) Analyze(grades models.GradeSet, patient models.PatientInfo) (*models.Analysis, error) {
	a, err := s.interp.Analyze(grades, patient)
	if err != nil {
		return nil, err
	}
	if err := s.store.Append(*a); err != nil {
		return nil, fmt.Errorf("recording analysis: %w", err)
	}
	return a, nil
}

// Get returns one stored analysis by ID.
func (s *AnalysisService) Get(id string) (*models.Analysis, error) {
	return s.store.Get(id)
}

// List returns summaries of stored analyses sorted by the given field and
// order. Supported fields: timestamp (default), probability, average.
func (s *AnalysisService) List(sortField, order string) ([]AnalysisSummary, error) {
	entries, err := s.store.Recent(0)
	if err != nil {
		return nil, err
	}

	summaries := make([]AnalysisSummary, 0, len(entries))
	for _, a := range entries {
		summaries = append(summaries, analysisToSummary(&a))
	}

	sortSummaries(summaries, sortField, order)
	return summaries, nil
}

// Summary returns aggregate metrics across all stored analyses.
func (s *AnalysisService) Summary() (*SummaryResponse, error) {
	entries, err := s.store.Recent(0)
	if err != nil {
		return nil, err
	}

	resp := &SummaryResponse{BandCounts: map[string]int{}}
	if len(entries) == 0 {
		return resp, nil
	}

	total := 0.0
	for _, a := range entries {
		resp.TotalAnalyses++
		resp.BandCounts[a.Band.String()]++
		total += a.SuccessProbability
	}
	resp.AvgProbability = total / float64(resp.TotalAnalyses)
	return resp, nil
}

func analysisToSummary(a *models.Analysis) AnalysisSummary {
	return AnalysisSummary{
		ID:                 a.ID,
		Timestamp:          a.Timestamp,
		ICM:                a.Grades.ICM,
		TE:                 a.Grades.TE,
		Exp:                a.Grades.Exp,
		Average:            a.Average,
		Quality:            a.Band,
		SuccessProbability: a.SuccessProbability,
	}
}

func sortSummaries(summaries []AnalysisSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "probability":
			return summaries[i].SuccessProbability < summaries[j].SuccessProbability
		case "average":
			return summaries[i].Average < summaries[j].Average
		default: // "timestamp" or empty
			return summaries[i].Timestamp.Before(summaries[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.SliceStable(summaries, less)
	} else {
		sort.SliceStable(summaries, func(i, j int) bool { return less(j, i) })
	}
}
