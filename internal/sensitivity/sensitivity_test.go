package sensitivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceConfig() Config {
	return Config{
		Variables: []Variable{
			{Name: "Timeline", BaseValue: 90, MinValue: 60, MaxValue: 120, Weight: 0.5},
			{Name: "Budget", BaseValue: 100000, MinValue: 50000, MaxValue: 150000, Weight: 0.8},
		},
		StepCount: 10,
	}
}

func TestAnalyze_ReferenceVariables(t *testing.T) {
	r := Analyze(80, referenceConfig())

	require.Len(t, r.VariableImpacts, 2)
	require.Len(t, r.TornadoChartData, 2)

	timeline := r.VariableImpacts[0]
	assert.Equal(t, "Timeline", timeline.VariableName)
	assert.InDelta(t, 76.6667, timeline.ScoreAtMin, 1e-3)
	assert.InDelta(t, 83.3333, timeline.ScoreAtMax, 1e-3)
	assert.InDelta(t, 0.125, timeline.Elasticity, 1e-9)
	assert.Equal(t, 1.0, timeline.Correlation)
	assert.False(t, timeline.IsCritical)

	budget := r.VariableImpacts[1]
	assert.InDelta(t, 72, budget.ScoreAtMin, 1e-9)
	assert.InDelta(t, 88, budget.ScoreAtMax, 1e-9)
	assert.InDelta(t, 16, budget.ScoreRange, 1e-9)
	assert.InDelta(t, 0.2, budget.Elasticity, 1e-9)
	assert.True(t, budget.IsCritical)

	// widest spread first, regardless of input order
	assert.Equal(t, "Budget", r.TornadoChartData[0].VariableName)
	assert.Equal(t, "Timeline", r.TornadoChartData[1].VariableName)
	assert.GreaterOrEqual(t, r.TornadoChartData[0].Spread(), r.TornadoChartData[1].Spread())
	assert.Equal(t, 100000.0, r.TornadoChartData[0].BaseValue)

	assert.Equal(t, []string{"Budget"}, r.CriticalVariables)
	assert.Equal(t, []string{
		"Focus on maximizing 'Budget' - positive correlation with decision success",
	}, r.Recommendations)
}

func TestAnalyze_NegativeWeight(t *testing.T) {
	r := Analyze(80, Config{
		Variables: []Variable{{Name: "Churn", BaseValue: 10, MinValue: 5, MaxValue: 15, Weight: -2}},
		StepCount: 4,
	})
	im := r.VariableImpacts[0]
	assert.Equal(t, 100.0, im.ScoreAtMin)
	assert.Equal(t, 60.0, im.ScoreAtMax)
	assert.Equal(t, -1.0, im.Correlation)
	assert.True(t, im.IsCritical)
	assert.Equal(t, []string{
		"Minimize exposure to 'Churn' - negative correlation with decision success",
	}, r.Recommendations)
}

func TestAnalyze_HighElasticity(t *testing.T) {
	r := Analyze(20, Config{
		Variables: []Variable{{Name: "Price", BaseValue: 100, MinValue: 90, MaxValue: 110, Weight: 2}},
		StepCount: 2,
	})
	im := r.VariableImpacts[0]
	assert.InDelta(t, 2.0, im.Elasticity, 1e-9)
	require.Len(t, r.Recommendations, 2)
	assert.Contains(t, r.Recommendations[0], "Focus on maximizing 'Price'")
	assert.Contains(t, r.Recommendations[1], "(elasticity: 2.00)")
}

func TestAnalyze_Robust(t *testing.T) {
	r := Analyze(80, Config{
		Variables: []Variable{{Name: "Headcount", BaseValue: 10, MinValue: 9, MaxValue: 11, Weight: 0.1}},
		StepCount: 10,
	})
	assert.Empty(t, r.CriticalVariables)
	assert.Equal(t, []string{RobustRecommendation}, r.Recommendations)
}

func TestAnalyze_EdgeCases(t *testing.T) {
	t.Run("zero_range", func(t *testing.T) {
		r := Analyze(80, Config{
			Variables: []Variable{{Name: "Fixed", BaseValue: 5, MinValue: 5, MaxValue: 5, Weight: 1}},
			StepCount: 10,
		})
		im := r.VariableImpacts[0]
		assert.Zero(t, im.Elasticity)
		assert.Zero(t, im.ScoreRange)
		assert.Equal(t, -1.0, im.Correlation)
	})

	t.Run("zero_base_value", func(t *testing.T) {
		r := Analyze(80, Config{
			Variables: []Variable{{Name: "Zero", BaseValue: 0, MinValue: -1, MaxValue: 1, Weight: 1}},
			StepCount: 10,
		})
		im := r.VariableImpacts[0]
		assert.Equal(t, 80.0, im.ScoreAtMin)
		assert.Equal(t, 80.0, im.ScoreAtMax)
		assert.Zero(t, im.Elasticity)
	})

	t.Run("step_count_below_one", func(t *testing.T) {
		cfg := referenceConfig()
		cfg.StepCount = 0
		r := Analyze(80, cfg)
		assert.InDelta(t, 72, r.VariableImpacts[1].ScoreAtMin, 1e-9)
		assert.InDelta(t, 88, r.VariableImpacts[1].ScoreAtMax, 1e-9)
	})

	t.Run("clamped_scores", func(t *testing.T) {
		r := Analyze(95, Config{
			Variables: []Variable{{Name: "Upside", BaseValue: 1, MinValue: 1, MaxValue: 3, Weight: 1}},
			StepCount: 2,
		})
		assert.Equal(t, 100.0, r.VariableImpacts[0].ScoreAtMax)
	})

	t.Run("no_variables", func(t *testing.T) {
		r := Analyze(80, Config{StepCount: 10})
		assert.Empty(t, r.VariableImpacts)
		assert.Empty(t, r.TornadoChartData)
		assert.Equal(t, []string{RobustRecommendation}, r.Recommendations)
	})
}
