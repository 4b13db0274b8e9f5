package reporting

import (
	"time"

	"github.com/groundsdev/grounds/internal/metrics"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/statistics"
)

// DefaultConfidenceLevel is the level of the batch mean interval.
const DefaultConfidenceLevel = 0.95

// ScoredReport is one report evaluated as part of a batch. Err is set when
// the report could not be read; Result is nil in that case.
type ScoredReport struct {
	Name     string          `json:"name"`
	Result   *scoring.Result `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
	Duration time.Duration   `json:"-"`
}

// Failed reports whether r needs repair.
func (r ScoredReport) Failed() bool {
	return r.Result != nil && r.Result.MustRepair
}

// Batch is a set of reports scored together.
type Batch struct {
	RunID     string         `json:"run_id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  time.Duration  `json:"-"`
	Reports   []ScoredReport `json:"reports"`
}

// Summary aggregates the scored reports of a batch.
type Summary struct {
	Total      int                     `json:"total"`
	Passed     int                     `json:"passed"`
	MustRepair int                     `json:"must_repair"`
	Errors     int                     `json:"errors"`
	MeanScore  float64                 `json:"mean_score"`
	StdDev     float64                 `json:"std_dev"`
	MeanCI     statistics.MeanInterval `json:"mean_ci"`
}

// PassRate is the share of scored reports that need no repair, in [0,1].
func (s Summary) PassRate() float64 {
	scored := s.Total - s.Errors
	if scored == 0 {
		return 0
	}
	return float64(s.Passed) / float64(scored)
}

// Summarize computes b's summary. Reports that failed to load count as
// errors and are left out of the score statistics.
func Summarize(b *Batch, confidenceLevel float64) Summary {
	s := Summary{Total: len(b.Reports)}
	scores := make([]float64, 0, len(b.Reports))
	for _, r := range b.Reports {
		switch {
		case r.Result == nil:
			s.Errors++
			continue
		case r.Result.MustRepair:
			s.MustRepair++
		default:
			s.Passed++
		}
		scores = append(scores, float64(r.Result.Score))
	}

	s.MeanScore = metrics.Mean(scores)
	s.StdDev = metrics.StdDev(scores)
	s.MeanCI = statistics.BootstrapCI(scores, confidenceLevel)
	return s
}
