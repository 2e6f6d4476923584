package webapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/embrylab/blastograde/internal/history"
	"github.com/embrylab/blastograde/internal/models"
	"github.com/embrylab/blastograde/internal/report"
	"github.com/embrylab/blastograde/internal/validation"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// maxRequestBody bounds analyze request payloads.
const maxRequestBody = 1 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	service *AnalysisService
}

// NewHandlers creates a new Handlers over the given service.
func NewHandlers(service *AnalysisService) *Handlers {
	return &Handlers{service: service}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleSummary returns aggregate metrics across all stored analyses.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.service.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleList returns stored analyses, with optional sort/order query params.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")

	analyses, err := h.service.List(sortField, order)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

// HandleAnalyze validates the request body against the analysis-request
// schema, runs the interpreter, records the result, and returns the full
// analysis.
func (h *Handlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}

	if errs := validation.ValidateAnalysisRequest(body); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "invalid analysis request",
			Code:    http.StatusUnprocessableEntity,
			Details: errs,
		})
		return
	}

	var req AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	analysis, err := h.service.Analyze(req.Grades, req.Patient)
	if err != nil {
		var gradeErr *models.InvalidGradeError
		if errors.As(err, &gradeErr) {
			writeError(w, http.StatusUnprocessableEntity, gradeErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, analysis)
}

// HandleDetail returns one stored analysis.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	analysis, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// HandleReport renders one stored analysis in the requested encoding.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(report.FormatJSON)
	}
	format, err := report.ParseFormat(formatParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "analysis not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	payload, err := report.Render(analysis, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(payload) //nolint:errcheck
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, service *AnalysisService) {
	h := NewHandlers(service)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
	mux.HandleFunc("GET /api/analyses", h.HandleList)
	mux.HandleFunc("POST /api/analyses", h.HandleAnalyze)
	mux.HandleFunc("GET /api/analyses/{id}", h.HandleDetail)
	mux.HandleFunc("GET /api/analyses/{id}/report", h.HandleReport)
}

// CORSMiddleware wraps a handler with CORS headers. If allowedOrigins is
// empty, no CORS header is set (same-origin only). Otherwise, the request
// Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
