package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/interpret"
	"github.com/embrylab/blastograde/internal/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *AnalysisService) {
	t.Helper()

	seq := 0
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	interp, err := interpret.New(models.DefaultScoringPolicy(),
		interpret.WithClock(func() time.Time {
			seq++
			return base.Add(time.Duration(seq) * time.Minute)
		}),
		interpret.WithIDSource(func() string {
			return fmt.Sprintf("analysis-%04d", seq+1)
		}),
	)
	require.NoError(t, err)

	service := NewAnalysisService(interp, history.NewMemoryStore(0))

	mux := http.NewServeMux()
	RegisterRoutes(mux, service)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, service
}

func postAnalysis(t *testing.T, srv *httptest.Server, icm, te, exp int) *models.Analysis {
	t.Helper()
	body := fmt.Sprintf(`{"grades": {"icm": %d, "te": %d, "exp": %d}, "patient_info": {"patient_id": "P-001"}}`,
		icm, te, exp)
	resp, err := http.Post(srv.URL+"/api/analyses", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var a models.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	return &a
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}

func TestHandleAnalyze(t *testing.T) {
	srv, _ := newTestServer(t)

	a := postAnalysis(t, srv, 4, 5, 5)
	require.NotEmpty(t, a.ID)
	require.Equal(t, models.BandHigh, a.Band)
	require.Equal(t, models.GradeSet{ICM: 4, TE: 5, Exp: 5}, a.Grades)
	require.Len(t, a.Notes, 3)
	require.NotEmpty(t, a.Recommendations)
}

func TestHandleAnalyze_SchemaRejection(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"grade above range", `{"grades": {"icm": 9, "te": 3, "exp": 3}}`},
		{"grade below range", `{"grades": {"icm": 0, "te": 3, "exp": 3}}`},
		{"missing grades", `{"patient_info": {}}`},
		{"non-integer grade", `{"grades": {"icm": 3.5, "te": 3, "exp": 3}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/analyses", "application/json",
				bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			require.NotEmpty(t, errResp.Details)
		})
	}
}

func TestHandleDetail(t *testing.T) {
	srv, _ := newTestServer(t)
	created := postAnalysis(t, srv, 3, 3, 3)

	resp, err := http.Get(srv.URL + "/api/analyses/" + created.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Grades, got.Grades)
}

func TestHandleDetail_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/analyses/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleList_Sorting(t *testing.T) {
	srv, _ := newTestServer(t)
	postAnalysis(t, srv, 2, 2, 2)
	postAnalysis(t, srv, 5, 5, 5)
	postAnalysis(t, srv, 3, 3, 3)

	fetch := func(query string) []AnalysisSummary {
		resp, err := http.Get(srv.URL + "/api/analyses" + query)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []AnalysisSummary
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		return list
	}

	t.Run("default is newest first", func(t *testing.T) {
		list := fetch("")
		require.Len(t, list, 3)
		require.True(t, list[0].Timestamp.After(list[1].Timestamp))
		require.True(t, list[1].Timestamp.After(list[2].Timestamp))
	})

	t.Run("probability descending", func(t *testing.T) {
		list := fetch("?sort=probability")
		require.Len(t, list, 3)
		require.GreaterOrEqual(t, list[0].SuccessProbability, list[1].SuccessProbability)
		require.GreaterOrEqual(t, list[1].SuccessProbability, list[2].SuccessProbability)
	})

	t.Run("average ascending", func(t *testing.T) {
		list := fetch("?sort=average&order=asc")
		require.Len(t, list, 3)
		require.LessOrEqual(t, list[0].Average, list[1].Average)
		require.LessOrEqual(t, list[1].Average, list[2].Average)
	})
}

func TestHandleSummary(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("empty store", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/summary")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var summary SummaryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
		require.Equal(t, 0, summary.TotalAnalyses)
	})

	postAnalysis(t, srv, 5, 5, 5)
	postAnalysis(t, srv, 2, 2, 2)

	t.Run("aggregates", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/summary")
		require.NoError(t, err)
		defer resp.Body.Close()

		var summary SummaryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
		require.Equal(t, 2, summary.TotalAnalyses)
		require.Equal(t, 1, summary.BandCounts[models.BandHigh.String()])
		require.Equal(t, 1, summary.BandCounts[models.BandLow.String()])
		require.Greater(t, summary.AvgProbability, 0.0)
	})
}

func TestHandleReport(t *testing.T) {
	srv, _ := newTestServer(t)
	created := postAnalysis(t, srv, 4, 4, 4)

	t.Run("defaults to JSON", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analyses/" + created.ID + "/report")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	})

	t.Run("csv", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analyses/" + created.ID + "/report?format=csv")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	})

	t.Run("pdf", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analyses/" + created.ID + "/report?format=pdf")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	})

	t.Run("unknown format", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analyses/" + created.ID + "/report?format=docx")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown analysis", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analyses/no-such-id/report")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		h := CORSMiddleware(inner, "http://localhost:5173")
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin gets none", func(t *testing.T) {
		h := CORSMiddleware(inner, "http://localhost:5173")
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := CORSMiddleware(inner, "http://localhost:5173")
		req := httptest.NewRequest(http.MethodOptions, "/api/analyses", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
