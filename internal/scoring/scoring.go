package scoring

import (
	"fmt"
	"strings"

	"github.com/groundsdev/grounds/internal/models"
)

// ConfidenceInterval is the score band attached to every Result.
type ConfidenceInterval = models.ConfidenceInterval

// FinishReason classifies why a report did or did not pass.
type FinishReason string

const (
	FinishOK                  FinishReason = "OK"
	FinishIncompleteStructure FinishReason = "INCOMPLETE_STRUCTURE"
	FinishLikelyTruncated     FinishReason = "LIKELY_TRUNCATED"
)

func (f FinishReason) String() string {
	return string(f)
}

// Valid reports whether f is a known finish reason.
func (f FinishReason) Valid() bool {
	switch f {
	case FinishOK, FinishIncompleteStructure, FinishLikelyTruncated:
		return true
	default:
		return false
	}
}

// Penalty weights, in points.
const (
	MissingHeaderPenalty   = 12
	EmptySectionPenalty    = 8
	DuplicateHeaderPenalty = 6
	ShortActionsBase       = 10
	ShortActionsPerItem    = 3
	TruncationPenalty      = 12

	// TruncationRepairThreshold is the score below which a truncated
	// report must be repaired.
	TruncationRepairThreshold = 92
)

// DefaultRequiredHeaders is the section template a decision report follows.
var DefaultRequiredHeaders = []string{
	"BEST OPTION",
	"RATIONALE",
	"TOP RISKS",
	"ASSUMPTIONS TO VALIDATE",
	"HALF-LIFE",
	"BLIND SPOTS",
	"NEXT ACTIONS",
}

// DefaultMinNextActions is the minimum number of NEXT ACTIONS items.
const DefaultMinNextActions = 6

// Config controls report evaluation.
type Config struct {
	RequiredHeaders []string `json:"required_headers" yaml:"required_headers" mapstructure:"required_headers"`
	MinNextActions  int      `json:"min_next_actions" yaml:"min_next_actions" mapstructure:"min_next_actions"`
	QualityMetrics  bool     `json:"quality_metrics" yaml:"quality_metrics" mapstructure:"quality_metrics"`
}

// DefaultConfig returns the standard decision-report template settings.
func DefaultConfig() Config {
	return Config{
		RequiredHeaders: append([]string(nil), DefaultRequiredHeaders...),
		MinNextActions:  DefaultMinNextActions,
		QualityMetrics:  true,
	}
}

// Result is the outcome of evaluating one report.
type Result struct {
	Score               int                `json:"score"`
	MustRepair          bool               `json:"must_repair"`
	FinishReason        FinishReason       `json:"finish_reason_hint"`
	MissingHeaders      []string           `json:"missing_headers"`
	EmptySections       []string           `json:"empty_sections"`
	DuplicateHeaders    []string           `json:"duplicate_headers"`
	NextActionsCount    int                `json:"next_actions_count"`
	NextActionsOK       bool               `json:"next_actions_ok"`
	TruncationSuspected bool               `json:"truncation_suspected"`
	Notes               []string           `json:"notes"`
	QualityMetrics      QualityMetrics     `json:"quality_metrics"`
	ConfidenceInterval  ConfidenceInterval `json:"confidence_interval"`
}

// Evaluate scores report text against cfg. It never fails: empty or
// degenerate input yields a result with every header missing.
func Evaluate(text string, cfg Config) *Result {
	cleaned := CleanText(text)
	norm := NormalizeForHeaders(cleaned)

	findings := EvaluateHeaders(norm, cfg.RequiredHeaders)
	r := &Result{
		MissingHeaders:      nonNil(findings.Missing),
		EmptySections:       nonNil(findings.Empty),
		DuplicateHeaders:    nonNil(findings.Duplicates),
		NextActionsCount:    CountNextActions(norm),
		TruncationSuspected: LooksTruncated(cleaned),
		Notes:               []string{},
	}
	r.NextActionsOK = r.NextActionsCount >= cfg.MinNextActions

	score := 100
	if n := len(r.MissingHeaders); n > 0 {
		p := n * MissingHeaderPenalty
		score -= p
		r.Notes = append(r.Notes, fmt.Sprintf("Missing headers penalty: -%d", p))
	}
	if n := len(r.EmptySections); n > 0 {
		p := n * EmptySectionPenalty
		score -= p
		r.Notes = append(r.Notes, fmt.Sprintf("Empty sections penalty: -%d", p))
	}
	if n := len(r.DuplicateHeaders); n > 0 {
		p := n * DuplicateHeaderPenalty
		score -= p
		r.Notes = append(r.Notes, fmt.Sprintf("Duplicate headers penalty: -%d", p))
	}
	if !r.NextActionsOK {
		p := ShortActionsBase + max(0, cfg.MinNextActions-r.NextActionsCount)*ShortActionsPerItem
		score -= p
		r.Notes = append(r.Notes, fmt.Sprintf("NEXT ACTIONS count too low (%d), penalty: -%d", r.NextActionsCount, p))
	}
	if r.TruncationSuspected {
		score -= TruncationPenalty
		r.Notes = append(r.Notes, fmt.Sprintf("Truncation suspected penalty: -%d", TruncationPenalty))
	}
	r.Score = min(max(score, 0), 100)

	if cfg.QualityMetrics {
		r.QualityMetrics = CalculateQualityMetrics(cleaned)
	}
	r.ConfidenceInterval = ConfidenceFor(float64(r.Score), r.QualityMetrics)

	r.MustRepair = len(r.MissingHeaders) > 0 ||
		!r.NextActionsOK ||
		(r.TruncationSuspected && r.Score < TruncationRepairThreshold)
	r.FinishReason = finishReasonFor(r.TruncationSuspected, r.MustRepair)

	return r
}

// finishReasonFor ranks truncation above the repair flag.
func finishReasonFor(truncated, mustRepair bool) FinishReason {
	switch {
	case truncated:
		return FinishLikelyTruncated
	case mustRepair:
		return FinishIncompleteStructure
	default:
		return FinishOK
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Summary returns a one-line description of r for terminal output.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "score %d/100 (%s)", r.Score, r.FinishReason)
	if r.MustRepair {
		b.WriteString(", needs repair")
	}
	return b.String()
}

// Scorer evaluates report text.
type Scorer interface {
	Score(text string) *Result
}

// HeuristicScorer applies Evaluate with a fixed configuration.
type HeuristicScorer struct {
	Config Config
}

// NewHeuristicScorer returns a scorer for cfg.
func NewHeuristicScorer(cfg Config) HeuristicScorer {
	return HeuristicScorer{Config: cfg}
}

func (s HeuristicScorer) Score(text string) *Result {
	return Evaluate(text, s.Config)
}
