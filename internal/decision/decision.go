// Package decision loads decision records and measures how ready they are
// to be acted on.
package decision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/groundsdev/grounds/internal/payload"
	"github.com/groundsdev/grounds/internal/source"
	"github.com/groundsdev/grounds/internal/validation"
)

// ErrInvalidRecord is returned when a decision record cannot be loaded.
var ErrInvalidRecord = errors.New("invalid decision record")

// Record is a decision captured before it is made.
type Record struct {
	Title        string   `json:"title" yaml:"title" mapstructure:"title"`
	Context      string   `json:"context" yaml:"context" mapstructure:"context"`
	Intent       string   `json:"intent" yaml:"intent" mapstructure:"intent"`
	Options      []string `json:"options" yaml:"options" mapstructure:"options"`
	Assumptions  []string `json:"assumptions" yaml:"assumptions" mapstructure:"assumptions"`
	Risks        []string `json:"risks" yaml:"risks" mapstructure:"risks"`
	Evidence     []string `json:"evidence" yaml:"evidence" mapstructure:"evidence"`
	Confidence   string   `json:"confidence" yaml:"confidence" mapstructure:"confidence"`
	CreatedAtISO string   `json:"createdAtISO" yaml:"createdAtISO" mapstructure:"createdAtISO"`
	Outcome      *string  `json:"outcome,omitempty" yaml:"outcome,omitempty" mapstructure:"outcome"`
}

// Load reads a JSON or YAML decision record from path. "-" reads stdin.
func Load(path string) (*Record, error) {
	data, _, err := source.Read(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSON or YAML decision record.
func Parse(data []byte) (*Record, error) {
	rec := &Record{}
	if err := payload.Decode(data, validation.KindDecision, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return rec, nil
}

// Analysis is the readiness verdict for one record.
type Analysis struct {
	ReadinessScore int      `json:"readiness_score"`
	Note           string   `json:"note"`
	Gaps           []string `json:"gaps,omitempty"`
}

var knownConfidence = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// Readiness scores a record from 0 to 100 by how much of the groundwork a
// decision needs is present.
//
// Scoring factors:
//   - Context substantive (>100, >50, >20 chars): 20, 15, 8
//   - Intent stated: 10
//   - Options considered (>=3, >=2, >=1): 20, 15, 5
//   - Assumptions listed (>=2, >=1): 15, 10
//   - Risks listed (>=2, >=1): 15, 10
//   - Evidence cited (>=2, >=1): 15, 10
//   - Confidence labelled low, medium or high: 5
func Readiness(rec *Record) Analysis {
	score := 0
	var gaps []string

	switch n := len(strings.TrimSpace(rec.Context)); {
	case n > 100:
		score += 20
	case n > 50:
		score += 15
	case n > 20:
		score += 8
		gaps = append(gaps, "context is brief")
	default:
		gaps = append(gaps, "context is missing")
	}

	if strings.TrimSpace(rec.Intent) != "" {
		score += 10
	} else {
		gaps = append(gaps, "intent is not stated")
	}

	switch n := countNonBlank(rec.Options); {
	case n >= 3:
		score += 20
	case n >= 2:
		score += 15
	case n >= 1:
		score += 5
		gaps = append(gaps, "only one option considered")
	default:
		gaps = append(gaps, "no options listed")
	}

	score += listPoints(rec.Assumptions, "assumptions", &gaps)
	score += listPoints(rec.Risks, "risks", &gaps)
	score += listPoints(rec.Evidence, "evidence", &gaps)

	if knownConfidence[strings.ToLower(strings.TrimSpace(rec.Confidence))] {
		score += 5
	} else {
		gaps = append(gaps, "confidence is not labelled low, medium or high")
	}

	note := "Readiness analysis for: " + rec.Title
	if rec.Outcome != nil && strings.TrimSpace(*rec.Outcome) != "" {
		note += " (outcome recorded)"
	}

	return Analysis{
		ReadinessScore: score,
		Note:           note,
		Gaps:           gaps,
	}
}

func listPoints(items []string, what string, gaps *[]string) int {
	switch n := countNonBlank(items); {
	case n >= 2:
		return 15
	case n == 1:
		return 10
	default:
		*gaps = append(*gaps, "no "+what+" listed")
		return 0
	}
}

func countNonBlank(items []string) int {
	n := 0
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
