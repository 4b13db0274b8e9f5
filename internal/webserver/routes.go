package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/groundsdev/grounds/internal/webapi"
)

// registerRoutes sets up the analysis API on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config, store webapi.ResultStore) {
	webapi.RegisterRoutes(mux, cfg.Service, store, cfg.Logger)
	mux.HandleFunc("/api/", handleAPINotFound)
	mux.HandleFunc("GET /{$}", handleIndex)
}

// handleAPINotFound answers unknown API paths with a JSON error.
func handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(webapi.ErrorResponse{ //nolint:errcheck
		Error: "no such endpoint: " + r.URL.Path,
		Code:  http.StatusNotFound,
	})
}

// handleIndex lists the available endpoints.
func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"name":    "grounds",
		"version": webapi.Version,
		"endpoints": []string{
			"GET /api/health",
			"POST /api/report",
			"POST /api/report/text",
			"POST /api/risk/simulate",
			"POST /api/sensitivity",
			"POST /api/decay",
			"POST /api/decision/readiness",
			"GET /api/results",
			"GET /api/results/{id}",
			"GET /api/summary",
		},
	})
}
