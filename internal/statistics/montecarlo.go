package statistics

import (
	"sort"

	"github.com/groundsdev/grounds/internal/metrics"
	"github.com/groundsdev/grounds/internal/models"
)

const (
	// DefaultIterations is the number of trials when none is configured.
	DefaultIterations = 10000

	// DefaultConfidenceLevel is the two-sided level of the result interval.
	DefaultConfidenceLevel = 0.95

	// FailureThreshold is the score below which a trial counts as a failure.
	FailureThreshold = 60.0
)

// MonteCarloConfig controls a risk simulation.
type MonteCarloConfig struct {
	Iterations      int     `json:"iterations" yaml:"iterations" mapstructure:"iterations"`
	Seed            *uint64 `json:"seed,omitempty" yaml:"seed,omitempty" mapstructure:"seed"`
	ConfidenceLevel float64 `json:"confidence_level" yaml:"confidence_level" mapstructure:"confidence_level"`
}

// DefaultMonteCarloConfig returns 10000 iterations at the 0.95 level with
// the default seed.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Iterations:      DefaultIterations,
		ConfidenceLevel: DefaultConfidenceLevel,
	}
}

// SeedOrDefault returns the configured seed or DefaultSeed.
func (c MonteCarloConfig) SeedOrDefault() uint64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

// MonteCarloResult summarizes the simulated score distribution.
type MonteCarloResult struct {
	MeanScore            float64                   `json:"mean_score"`
	StdDev               float64                   `json:"std_dev"`
	MinScore             float64                   `json:"min_score"`
	MaxScore             float64                   `json:"max_score"`
	Percentile5          float64                   `json:"percentile_5"`
	Percentile25         float64                   `json:"percentile_25"`
	Percentile50         float64                   `json:"percentile_50"`
	Percentile75         float64                   `json:"percentile_75"`
	Percentile95         float64                   `json:"percentile_95"`
	ConfidenceInterval   models.ConfidenceInterval `json:"confidence_interval"`
	RiskOfFailure        float64                   `json:"risk_of_failure"`
	IterationsRun        int                       `json:"iterations_run"`
	ScenarioDistribution []ScenarioOutcome         `json:"scenario_distribution"`
}

// Simulate runs cfg.Iterations trials starting from baseScore. In each
// trial every risk, in order, materializes when a uniform draw falls below
// its probability and then deducts an impact interpolated between its low
// and high bounds by a second draw. Each trial is clamped to [0,100].
//
// A non-positive iteration count yields an empty distribution: mean 0,
// min 0, max 100 and every percentile at metrics.EmptyPercentile.
func Simulate(baseScore float64, risks []models.RiskFactor, cfg MonteCarloConfig) *MonteCarloResult {
	iterations := max(cfg.Iterations, 0)
	rng := NewLCG(cfg.SeedOrDefault())

	results := make([]float64, 0, iterations)
	for range iterations {
		score := baseScore
		for _, risk := range risks {
			if rng.Next() < risk.Probability {
				score -= risk.ImpactLow + (risk.ImpactHigh-risk.ImpactLow)*rng.Next()
			}
		}
		results = append(results, metrics.Clamp(score, 0, 100))
	}
	sort.Float64s(results)

	r := &MonteCarloResult{
		MeanScore:            metrics.Mean(results),
		StdDev:               metrics.StdDev(results),
		MinScore:             0,
		MaxScore:             100,
		Percentile5:          metrics.Percentile(results, 5),
		Percentile25:         metrics.Percentile(results, 25),
		Percentile50:         metrics.Percentile(results, 50),
		Percentile75:         metrics.Percentile(results, 75),
		Percentile95:         metrics.Percentile(results, 95),
		IterationsRun:        iterations,
		ScenarioDistribution: CategorizeScenarios(results),
		ConfidenceInterval: models.ConfidenceInterval{
			LowerBound:      metrics.Percentile(results, (1-cfg.ConfidenceLevel)/2*100),
			UpperBound:      metrics.Percentile(results, (1+cfg.ConfidenceLevel)/2*100),
			ConfidenceLevel: cfg.ConfidenceLevel,
		},
	}

	if n := len(results); n > 0 {
		r.MinScore = results[0]
		r.MaxScore = results[n-1]

		failures := 0
		for _, s := range results {
			if s < FailureThreshold {
				failures++
			}
		}
		r.RiskOfFailure = float64(failures) / float64(n)
	}

	return r
}
