// Package decay projects how confidence in a decision erodes over time.
package decay

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrNoDecayFactors is returned when a config lists no decay factors.
var ErrNoDecayFactors = errors.New("at least one decay factor is required")

// Classification buckets a decision by half-life.
type Classification string

const (
	Stable   Classification = "Stable"
	Moderate Classification = "Moderate"
	Volatile Classification = "Volatile"
	Critical Classification = "Critical"
)

// Half-life thresholds in days; each bound is exclusive.
const (
	stableAfterDays   = 180.0
	moderateAfterDays = 60.0
	volatileAfterDays = 14.0
)

// Classify returns the classification for a half-life in days.
func Classify(halfLifeDays float64) Classification {
	switch {
	case halfLifeDays > stableAfterDays:
		return Stable
	case halfLifeDays > moderateAfterDays:
		return Moderate
	case halfLifeDays > volatileAfterDays:
		return Volatile
	default:
		return Critical
	}
}

// Factor is one named source of decay.
type Factor struct {
	Name       string  `json:"name" yaml:"name" mapstructure:"name"`
	DecayRate  float64 `json:"decay_rate" yaml:"decay_rate" mapstructure:"decay_rate"`
	Volatility float64 `json:"volatility" yaml:"volatility" mapstructure:"volatility"`
}

// Config describes a decay projection.
type Config struct {
	InitialConfidence float64  `json:"initial_confidence" yaml:"initial_confidence" mapstructure:"initial_confidence"`
	DecayFactors      []Factor `json:"decay_factors" yaml:"decay_factors" mapstructure:"decay_factors"`
	TimeHorizonDays   int      `json:"time_horizon_days" yaml:"time_horizon_days" mapstructure:"time_horizon_days"`
}

// ConfidencePoint is the projected confidence on one day.
type ConfidencePoint struct {
	Day        int     `json:"day"`
	Confidence float64 `json:"confidence"`
	UpperBound float64 `json:"upper_bound"`
	LowerBound float64 `json:"lower_bound"`
}

// Result is the outcome of a decay projection.
type Result struct {
	// HalfLifeDays is +Inf when confidence never decays.
	HalfLifeDays        float64           `json:"half_life_days"`
	ConfidenceTimeline  []ConfidencePoint `json:"confidence_timeline"`
	CriticalReviewDate  string            `json:"critical_review_date"`
	DecayClassification Classification    `json:"decay_classification"`
	StabilityScore      float64           `json:"stability_score"`
	Recommendations     []string          `json:"recommendations"`
}

// MarshalJSON encodes an infinite half-life as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		HalfLifeDays *float64 `json:"half_life_days"`
	}{plain: plain(r)}
	if !math.IsInf(r.HalfLifeDays, 0) && !math.IsNaN(r.HalfLifeDays) {
		out.HalfLifeDays = &r.HalfLifeDays
	}
	return json.Marshal(out)
}

// Model projects confidence from day 0 through cfg.TimeHorizonDays. The
// factors' mean rate and volatility drive the curve:
//
//	confidence(d) = initial * exp(-rate*d/100)
//	margin(d)     = volatility * sqrt(d) / 10
//
// The half-life is the first day confidence reaches half its initial value,
// or ln 2 / (rate/100) when the horizon ends first.
func Model(cfg Config) (*Result, error) {
	if len(cfg.DecayFactors) == 0 {
		return nil, ErrNoDecayFactors
	}

	rate, volatility := aggregate(cfg.DecayFactors)
	horizon := max(cfg.TimeHorizonDays, 0)
	half := cfg.InitialConfidence / 2

	r := &Result{
		ConfidenceTimeline: make([]ConfidencePoint, 0, horizon+1),
	}

	found := false
	for day := 0; day <= horizon; day++ {
		c := cfg.InitialConfidence * math.Exp(-(rate * float64(day) / 100))
		margin := volatility * math.Sqrt(float64(day)) / 10

		r.ConfidenceTimeline = append(r.ConfidenceTimeline, ConfidencePoint{
			Day:        day,
			Confidence: c,
			UpperBound: math.Min(c+margin, 100),
			LowerBound: math.Max(c-margin, 0),
		})

		if !found && c <= half {
			r.HalfLifeDays = float64(day)
			found = true
		}
	}
	if !found {
		r.HalfLifeDays = math.Abs(math.Ln2 / (rate / 100))
	}

	r.DecayClassification = Classify(r.HalfLifeDays)
	r.StabilityScore = math.Min(r.HalfLifeDays/365*100, 100)
	r.CriticalReviewDate = fmt.Sprintf("%d days from now", roundDays(r.HalfLifeDays*0.5))
	r.Recommendations = recommendations(r.DecayClassification, r.HalfLifeDays)

	return r, nil
}

func aggregate(factors []Factor) (rate, volatility float64) {
	for _, f := range factors {
		rate += f.DecayRate
		volatility += f.Volatility
	}
	n := float64(len(factors))
	return rate / n, volatility / n
}

// roundDays rounds a day count, saturating at the uint32 range.
func roundDays(d float64) uint64 {
	switch {
	case math.IsNaN(d) || d <= 0:
		return 0
	case d >= math.MaxUint32:
		return math.MaxUint32
	default:
		return uint64(math.Round(d))
	}
}

func recommendations(c Classification, halfLife float64) []string {
	switch c {
	case Critical:
		return []string{
			"URGENT: Decision has very short validity window",
			fmt.Sprintf("Schedule review within %d days", roundDays(halfLife*0.3)),
			"Consider if decision can be made more stable",
		}
	case Volatile:
		return []string{
			"Decision requires frequent monitoring",
			fmt.Sprintf("Plan for review every %d days", roundDays(halfLife*0.4)),
			"Identify key assumptions that drive volatility",
		}
	case Moderate:
		return []string{
			"Decision has reasonable stability",
			fmt.Sprintf("Schedule quarterly review (every %d days)", roundDays(halfLife*0.5)),
		}
	case Stable:
		return []string{
			"Decision is highly stable",
			"Annual review recommended",
			"Monitor for black swan events that could invalidate assumptions",
		}
	default:
		return nil
	}
}
