package reporting

import (
	"time"

	"github.com/groundsdev/grounds/internal/models"
	"github.com/groundsdev/grounds/internal/scoring"
)

func newTestBatch() *Batch {
	return &Batch{
		RunID:     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Name:      "weekly",
		Timestamp: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Reports: []ScoredReport{
			{
				Name:     "a.md",
				Duration: 500 * time.Millisecond,
				Result: &scoring.Result{
					Score:            100,
					FinishReason:     scoring.FinishOK,
					NextActionsCount: 6,
					NextActionsOK:    true,
					Notes:            []string{},
					ConfidenceInterval: models.ConfidenceInterval{
						LowerBound: 90, UpperBound: 100, ConfidenceLevel: 0.95,
					},
				},
			},
			{
				Name:     "b.md",
				Duration: time.Second,
				Result: &scoring.Result{
					Score:            40,
					MustRepair:       true,
					FinishReason:     scoring.FinishIncompleteStructure,
					MissingHeaders:   []string{"RATIONALE"},
					EmptySections:    []string{"TOP RISKS"},
					NextActionsCount: 2,
					Notes:            []string{"Missing headers penalty: -12"},
					ConfidenceInterval: models.ConfidenceInterval{
						LowerBound: 25, UpperBound: 55, ConfidenceLevel: 0.95,
					},
				},
			},
			{Name: "c.md", Error: "open c.md: no such file"},
		},
	}
}
