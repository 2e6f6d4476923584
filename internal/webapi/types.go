package webapi

import (
	"time"

	"github.com/embrylab/blastograde/internal/models"
)

// AnalyzeRequest is the POST /api/analyses payload.
type AnalyzeRequest struct {
	Grades  models.GradeSet    `json:"grades"`
	Patient models.PatientInfo `json:"patient_info,omitempty"`
}

// AnalysisSummary is the API response for one analysis in the list.
type AnalysisSummary struct {
	ID                 string             `json:"id"`
	Timestamp          time.Time          `json:"timestamp"`
	ICM                int                `json:"icm"`
	TE                 int                `json:"te"`
	Exp                int                `json:"exp"`
	Average            float64            `json:"average"`
	Quality            models.QualityBand `json:"quality"`
	SuccessProbability float64            `json:"successProbability"`
}

// SummaryResponse is the aggregate KPI response.
type SummaryResponse struct {
	TotalAnalyses  int            `json:"totalAnalyses"`
	AvgProbability float64        `json:"avgProbability"`
	BandCounts     map[string]int `json:"bandCounts"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
