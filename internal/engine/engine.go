// Package engine puts every analysis behind one interface so transports and
// commands can share it and tests can mock it.
package engine

//go:generate go tool mockgen -source=engine.go -destination=mock_analyzer.go -package=engine

import (
	"github.com/groundsdev/grounds/internal/decay"
	"github.com/groundsdev/grounds/internal/decision"
	"github.com/groundsdev/grounds/internal/models"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/statistics"
)

// Analyzer runs the grounds analyses. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	// EvaluateReport scores report text. A nil cfg uses the analyzer's
	// default scoring config.
	EvaluateReport(text string, cfg *scoring.Config) *scoring.Result
	SimulateRisk(baseScore float64, risks []models.RiskFactor, cfg statistics.MonteCarloConfig) *statistics.MonteCarloResult
	AnalyzeSensitivity(baseScore float64, cfg sensitivity.Config) *sensitivity.Result
	ModelDecay(cfg decay.Config) (*decay.Result, error)
	Readiness(rec *decision.Record) decision.Analysis
}

type analyzer struct {
	scorer scoring.Scorer
}

// New returns the default Analyzer. defaults applies to EvaluateReport
// calls that carry no config of their own.
func New(defaults scoring.Config) Analyzer {
	return NewWithScorer(scoring.NewHeuristicScorer(defaults))
}

// NewWithScorer returns an Analyzer whose config-less report evaluations go
// to scorer.
func NewWithScorer(scorer scoring.Scorer) Analyzer {
	return &analyzer{scorer: scorer}
}

func (a *analyzer) EvaluateReport(text string, cfg *scoring.Config) *scoring.Result {
	if cfg == nil {
		return a.scorer.Score(text)
	}
	return scoring.NewHeuristicScorer(*cfg).Score(text)
}

func (a *analyzer) SimulateRisk(baseScore float64, risks []models.RiskFactor, cfg statistics.MonteCarloConfig) *statistics.MonteCarloResult {
	return statistics.Simulate(baseScore, risks, cfg)
}

func (a *analyzer) AnalyzeSensitivity(baseScore float64, cfg sensitivity.Config) *sensitivity.Result {
	return sensitivity.Analyze(baseScore, cfg)
}

func (a *analyzer) ModelDecay(cfg decay.Config) (*decay.Result, error) {
	return decay.Model(cfg)
}

func (a *analyzer) Readiness(rec *decision.Record) decision.Analysis {
	return decision.Readiness(rec)
}
