// Package sensitivity sweeps decision variables across their ranges to find
// the ones that move the score most.
package sensitivity

import (
	"fmt"
	"math"
	"slices"

	"github.com/groundsdev/grounds/internal/metrics"
)

const (
	// DefaultStepCount is the number of intervals each range is split into.
	DefaultStepCount = 10

	// impactScale converts a weighted relative change into score points.
	impactScale = 20.0

	criticalElasticity = 0.5
	criticalRange      = 15.0
	highElasticity     = 1.0
)

// RobustRecommendation is returned when no variable is critical.
const RobustRecommendation = "Decision appears robust to variable changes"

// Variable is one input swept from MinValue to MaxValue.
type Variable struct {
	Name      string  `json:"name" yaml:"name" mapstructure:"name"`
	BaseValue float64 `json:"base_value" yaml:"base_value" mapstructure:"base_value"`
	MinValue  float64 `json:"min_value" yaml:"min_value" mapstructure:"min_value"`
	MaxValue  float64 `json:"max_value" yaml:"max_value" mapstructure:"max_value"`
	Weight    float64 `json:"weight" yaml:"weight" mapstructure:"weight"`
}

// Config lists the variables to sweep.
type Config struct {
	Variables []Variable `json:"variables" yaml:"variables" mapstructure:"variables"`
	StepCount int        `json:"step_count" yaml:"step_count" mapstructure:"step_count"`
}

// VariableImpact describes how one variable moves the score.
type VariableImpact struct {
	VariableName string  `json:"variable_name"`
	Elasticity   float64 `json:"elasticity"`
	Correlation  float64 `json:"correlation"`
	ScoreAtMin   float64 `json:"score_at_min"`
	ScoreAtMax   float64 `json:"score_at_max"`
	ScoreRange   float64 `json:"score_range"`
	IsCritical   bool    `json:"is_critical"`
}

// TornadoBar is one bar of a tornado chart.
type TornadoBar struct {
	VariableName string  `json:"variable_name"`
	LowValue     float64 `json:"low_value"`
	HighValue    float64 `json:"high_value"`
	BaseValue    float64 `json:"base_value"`
	LowScore     float64 `json:"low_score"`
	HighScore    float64 `json:"high_score"`
}

// Spread returns the absolute score difference across the bar.
func (b TornadoBar) Spread() float64 {
	return math.Abs(b.HighScore - b.LowScore)
}

// Result is the outcome of a sensitivity sweep.
type Result struct {
	VariableImpacts  []VariableImpact `json:"variable_impacts"`
	TornadoChartData []TornadoBar     `json:"tornado_chart_data"`
	// CriticalVariables keeps input order.
	CriticalVariables []string `json:"critical_variables"`
	Recommendations   []string `json:"recommendations"`
}

// Analyze sweeps every variable in cfg around baseScore. Step counts below 1
// are treated as 1. A zero base value or base score contributes no change
// rather than an infinite one.
func Analyze(baseScore float64, cfg Config) *Result {
	steps := max(cfg.StepCount, 1)

	r := &Result{
		VariableImpacts:   make([]VariableImpact, 0, len(cfg.Variables)),
		TornadoChartData:  make([]TornadoBar, 0, len(cfg.Variables)),
		CriticalVariables: []string{},
	}

	for _, v := range cfg.Variables {
		scores := sweep(baseScore, v, steps)
		atMin, atMax := scores[0], scores[len(scores)-1]
		scoreRange := atMax - atMin

		impact := VariableImpact{
			VariableName: v.Name,
			Elasticity:   elasticity(baseScore, scoreRange, v),
			Correlation:  -1,
			ScoreAtMin:   atMin,
			ScoreAtMax:   atMax,
			ScoreRange:   scoreRange,
		}
		if atMax > atMin {
			impact.Correlation = 1
		}
		impact.IsCritical = math.Abs(impact.Elasticity) > criticalElasticity ||
			math.Abs(scoreRange) > criticalRange

		r.VariableImpacts = append(r.VariableImpacts, impact)
		r.TornadoChartData = append(r.TornadoChartData, TornadoBar{
			VariableName: v.Name,
			LowValue:     v.MinValue,
			HighValue:    v.MaxValue,
			BaseValue:    v.BaseValue,
			LowScore:     atMin,
			HighScore:    atMax,
		})
		if impact.IsCritical {
			r.CriticalVariables = append(r.CriticalVariables, v.Name)
		}
	}

	slices.SortStableFunc(r.TornadoChartData, func(a, b TornadoBar) int {
		switch {
		case a.Spread() > b.Spread():
			return -1
		case a.Spread() < b.Spread():
			return 1
		default:
			return 0
		}
	})

	r.Recommendations = recommendations(r.VariableImpacts)
	return r
}

// sweep returns the clamped score at each of steps+1 evenly spaced values
// from v.MinValue to v.MaxValue.
func sweep(baseScore float64, v Variable, steps int) []float64 {
	stepSize := (v.MaxValue - v.MinValue) / float64(steps)
	scores := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		value := v.MinValue + stepSize*float64(i)
		delta := 0.0
		if v.BaseValue != 0 {
			delta = (value - v.BaseValue) / v.BaseValue
		}
		scores = append(scores, metrics.Clamp(baseScore+delta*v.Weight*impactScale, 0, 100))
	}
	return scores
}

// elasticity is the percent change in score over the percent change in the
// variable across its full range.
func elasticity(baseScore, scoreRange float64, v Variable) float64 {
	if baseScore == 0 || v.BaseValue == 0 {
		return 0
	}
	pctScore := scoreRange / baseScore * 100
	pctVar := (v.MaxValue - v.MinValue) / v.BaseValue * 100
	if pctVar == 0 {
		return 0
	}
	return pctScore / pctVar
}

func recommendations(impacts []VariableImpact) []string {
	var recs []string
	for _, im := range impacts {
		if im.IsCritical {
			if im.Correlation > 0 {
				recs = append(recs, fmt.Sprintf("Focus on maximizing '%s' - positive correlation with decision success", im.VariableName))
			} else {
				recs = append(recs, fmt.Sprintf("Minimize exposure to '%s' - negative correlation with decision success", im.VariableName))
			}
		}
		if math.Abs(im.Elasticity) > highElasticity {
			recs = append(recs, fmt.Sprintf("High sensitivity to '%s' (elasticity: %.2f) - small changes have large effects", im.VariableName, im.Elasticity))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, RobustRecommendation)
	}
	return recs
}
