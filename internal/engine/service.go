package engine

import (
	"errors"
	"fmt"

	"github.com/groundsdev/grounds/internal/decay"
	"github.com/groundsdev/grounds/internal/decision"
	"github.com/groundsdev/grounds/internal/payload"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/statistics"
)

// ErrAnalysisFailed wraps errors raised by an analysis on a valid request.
var ErrAnalysisFailed = errors.New("analysis failed")

// Options holds the defaults applied to requests that leave fields out.
type Options struct {
	Scoring    scoring.Config
	MonteCarlo statistics.MonteCarloConfig
	StepCount  int
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Scoring:    scoring.DefaultConfig(),
		MonteCarlo: statistics.DefaultMonteCarloConfig(),
		StepCount:  sensitivity.DefaultStepCount,
	}
}

// Service decodes raw JSON or YAML requests and runs them through an
// Analyzer. Decode failures wrap payload.ErrInvalidPayload; analysis
// failures wrap ErrAnalysisFailed.
type Service struct {
	analyzer Analyzer
	opts     Options
}

// NewService returns a Service. A nil analyzer uses New(opts.Scoring).
func NewService(analyzer Analyzer, opts Options) *Service {
	if analyzer == nil {
		analyzer = New(opts.Scoring)
	}
	return &Service{analyzer: analyzer, opts: opts}
}

// Options returns the defaults the service applies.
func (s *Service) Options() Options {
	return s.opts
}

// Analyzer returns the underlying analyzer.
func (s *Service) Analyzer() Analyzer {
	return s.analyzer
}

// EvaluateReport handles a ReportRequest document.
func (s *Service) EvaluateReport(data []byte) (*scoring.Result, error) {
	req, err := payload.DecodeReport(data, s.opts.Scoring)
	if err != nil {
		return nil, err
	}
	return s.analyzer.EvaluateReport(req.Text, req.Config), nil
}

// EvaluateText scores raw report text with the default config.
func (s *Service) EvaluateText(text string) *scoring.Result {
	return s.analyzer.EvaluateReport(text, nil)
}

// SimulateRisk handles a RiskRequest document.
func (s *Service) SimulateRisk(data []byte) (*statistics.MonteCarloResult, error) {
	req, err := payload.DecodeRisk(data, s.opts.MonteCarlo)
	if err != nil {
		return nil, err
	}
	return s.analyzer.SimulateRisk(req.BaseScore, req.Risks, req.MonteCarlo), nil
}

// AnalyzeSensitivity handles a SensitivityRequest document.
func (s *Service) AnalyzeSensitivity(data []byte) (*sensitivity.Result, error) {
	req, err := payload.DecodeSensitivity(data, s.opts.StepCount)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeSensitivity(req.BaseScore, req.Config()), nil
}

// ModelDecay handles a DecayRequest document.
func (s *Service) ModelDecay(data []byte) (*decay.Result, error) {
	req, err := payload.DecodeDecay(data)
	if err != nil {
		return nil, err
	}
	r, err := s.analyzer.ModelDecay(*req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return r, nil
}

// Readiness handles a decision record document.
func (s *Service) Readiness(data []byte) (*decision.Analysis, error) {
	rec, err := decision.Parse(data)
	if err != nil {
		return nil, err
	}
	a := s.analyzer.Readiness(rec)
	return &a, nil
}
