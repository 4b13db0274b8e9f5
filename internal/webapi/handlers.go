package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/groundsdev/grounds/internal/decay"
	"github.com/groundsdev/grounds/internal/decision"
	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/payload"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/statistics"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// Result kinds, as stored and listed.
const (
	KindReport      = "report"
	KindRisk        = "risk"
	KindSensitivity = "sensitivity"
	KindDecay       = "decay"
	KindReadiness   = "readiness"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 8 << 20

// ResultIDHeader carries the stored result ID on analysis responses.
const ResultIDHeader = "X-Grounds-Result-Id"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	svc    *engine.Service
	store  ResultStore
	logger *slog.Logger
}

// NewHandlers creates Handlers backed by svc. A nil store disables result
// history.
func NewHandlers(svc *engine.Service, store ResultStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, store: store, logger: logger}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleReportText scores a raw report body with the default template and
// always answers 200 with the result JSON, or null when it cannot be
// produced.
func (h *Handlers) HandleReportText(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(scoring.ScoreReportJSON(string(body))) //nolint:errcheck
}

// HandleReport evaluates a JSON report request.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, KindReport, h.svc.EvaluateReport, func(res *scoring.Result) Entry {
		return Entry{Headline: res.Summary(), Score: ptr(float64(res.Score)), MustRepair: res.MustRepair}
	})
}

// HandleRisk runs a Monte Carlo risk simulation.
func (h *Handlers) HandleRisk(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, KindRisk, h.svc.SimulateRisk, func(res *statistics.MonteCarloResult) Entry {
		return Entry{
			Headline: fmt.Sprintf("mean %.1f, risk of failure %.1f%%", res.MeanScore, res.RiskOfFailure*100),
			Score:    ptr(res.MeanScore),
		}
	})
}

// HandleSensitivity runs a sensitivity sweep.
func (h *Handlers) HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, KindSensitivity, h.svc.AnalyzeSensitivity, func(res *sensitivity.Result) Entry {
		return Entry{Headline: fmt.Sprintf("%d of %d variables critical", len(res.CriticalVariables), len(res.VariableImpacts))}
	})
}

// HandleDecay projects confidence decay.
func (h *Handlers) HandleDecay(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, KindDecay, h.svc.ModelDecay, func(res *decay.Result) Entry {
		return Entry{
			Headline: fmt.Sprintf("%s, review %s", res.DecayClassification, res.CriticalReviewDate),
			Score:    ptr(res.StabilityScore),
		}
	})
}

// HandleReadiness scores a decision record.
func (h *Handlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, KindReadiness, h.svc.Readiness, func(res *decision.Analysis) Entry {
		return Entry{
			Headline: fmt.Sprintf("readiness %d/100", res.ReadinessScore),
			Score:    ptr(float64(res.ReadinessScore)),
		}
	})
}

// HandleResults lists stored results, with optional kind/sort/order query params.
func (h *Handlers) HandleResults(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, []ResultSummary{})
		return
	}
	q := r.URL.Query()
	results, err := h.store.ListResults(q.Get("kind"), q.Get("sort"), q.Get("order"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleResultDetail returns one stored result.
func (h *Handlers) HandleResultDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		// Fallback: extract from URL path for compatibility.
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/results/"), "/")
		if len(parts) > 0 {
			id = parts[0]
		}
	}
	if id == "" {
		writeError(w, http.StatusBadRequest, "result id is required")
		return
	}
	if h.store == nil {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}

	detail, err := h.store.GetResult(id)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			writeError(w, http.StatusNotFound, "result not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleSummary returns aggregate metrics across stored results.
func (h *Handlers) HandleSummary(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, SummaryResponse{ByKind: map[string]int{}})
		return
	}
	summary, err := h.store.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// serve reads the request body, runs call on it, records the result and
// writes it back as JSON.
func serve[T any](h *Handlers, w http.ResponseWriter, r *http.Request, kind string, call func([]byte) (T, error), describe func(T) Entry) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	res, err := call(body)
	if err != nil {
		h.logger.Debug("api request failed", "kind", kind, "error", err)
		writeServiceError(w, err)
		return
	}

	if h.store != nil {
		e := describe(res)
		e.Kind = kind
		e.Result = res
		stored, err := h.store.Add(e)
		if err != nil {
			// History is best effort.
			h.logger.Error("storing result", "kind", kind, "error", err)
		} else {
			w.Header().Set(ResultIDHeader, stored.ID)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return body, nil
}

// writeServiceError maps engine.Service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *payload.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    http.StatusBadRequest,
			Details: ve.Errors,
		})
	case errors.Is(err, payload.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrAnalysisFailed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func ptr[T any](v T) *T {
	return &v
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc *engine.Service, store ResultStore, logger *slog.Logger) {
	h := NewHandlers(svc, store, logger)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("POST /api/report", h.HandleReport)
	mux.HandleFunc("POST /api/report/text", h.HandleReportText)
	mux.HandleFunc("POST /api/risk/simulate", h.HandleRisk)
	mux.HandleFunc("POST /api/sensitivity", h.HandleSensitivity)
	mux.HandleFunc("POST /api/decay", h.HandleDecay)
	mux.HandleFunc("POST /api/decision/readiness", h.HandleReadiness)
	mux.HandleFunc("GET /api/results", h.HandleResults)
	mux.HandleFunc("GET /api/results/{id}", h.HandleResultDetail)
	mux.HandleFunc("GET /api/summary", h.HandleSummary)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
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
			w.Header().Set("Access-Control-Expose-Headers", ResultIDHeader)
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
