package webapi

import (
	"encoding/json"
	"time"
)

// ResultSummary is the API response for a single stored result in the list.
type ResultSummary struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Headline   string    `json:"headline"`
	Score      *float64  `json:"score,omitempty"`
	MustRepair bool      `json:"mustRepair"`
	Timestamp  time.Time `json:"timestamp"`
}

// ResultDetail is a stored result with its full analysis document.
type ResultDetail struct {
	ResultSummary
	Result json.RawMessage `json:"result"`
}

// SummaryResponse is the aggregate response across stored results.
type SummaryResponse struct {
	TotalResults   int            `json:"totalResults"`
	ByKind         map[string]int `json:"byKind"`
	ReportsScored  int            `json:"reportsScored"`
	AvgReportScore float64        `json:"avgReportScore"`
	RepairRate     float64        `json:"repairRate"`
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
