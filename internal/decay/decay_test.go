package decay

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleFactor(rate, volatility float64, horizon int) Config {
	return Config{
		InitialConfidence: 90,
		DecayFactors:      []Factor{{Name: "Market Changes", DecayRate: rate, Volatility: volatility}},
		TimeHorizonDays:   horizon,
	}
}

func TestModel_ReferenceScenario(t *testing.T) {
	r, err := Model(singleFactor(0.5, 0.2, 365))
	require.NoError(t, err)

	require.Len(t, r.ConfidenceTimeline, 366)
	assert.Equal(t, 0, r.ConfidenceTimeline[0].Day)
	assert.Equal(t, 365, r.ConfidenceTimeline[365].Day)
	assert.Equal(t, 90.0, r.ConfidenceTimeline[0].Confidence)
	assert.Equal(t, 90.0, r.ConfidenceTimeline[0].UpperBound)

	assert.Equal(t, 139.0, r.HalfLifeDays)
	assert.Equal(t, Moderate, r.DecayClassification)
	assert.InDelta(t, 139.0/365*100, r.StabilityScore, 1e-9)
	assert.Equal(t, "70 days from now", r.CriticalReviewDate)
	assert.Equal(t, []string{
		"Decision has reasonable stability",
		"Schedule quarterly review (every 70 days)",
	}, r.Recommendations)

	last := r.ConfidenceTimeline[365]
	assert.InDelta(t, 14.5096, last.Confidence, 1e-3)
	assert.InDelta(t, last.Confidence+0.2*math.Sqrt(365)/10, last.UpperBound, 1e-9)
	assert.InDelta(t, last.Confidence-0.2*math.Sqrt(365)/10, last.LowerBound, 1e-9)
}

func TestModel_TimelineMonotone(t *testing.T) {
	r, err := Model(singleFactor(1.5, 3, 120))
	require.NoError(t, err)
	for i := 1; i < len(r.ConfidenceTimeline); i++ {
		prev, cur := r.ConfidenceTimeline[i-1], r.ConfidenceTimeline[i]
		assert.LessOrEqual(t, cur.Confidence, prev.Confidence)
		assert.LessOrEqual(t, cur.LowerBound, cur.Confidence)
		assert.GreaterOrEqual(t, cur.UpperBound, cur.Confidence)
		assert.GreaterOrEqual(t, cur.LowerBound, 0.0)
		assert.LessOrEqual(t, cur.UpperBound, 100.0)
	}
}

func TestModel_Classifications(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		horizon  int
		halfLife float64
		class    Classification
		review   string
		recs     []string
	}{
		{
			name: "critical", rate: 10, horizon: 365, halfLife: 7, class: Critical,
			review: "4 days from now",
			recs: []string{
				"URGENT: Decision has very short validity window",
				"Schedule review within 2 days",
				"Consider if decision can be made more stable",
			},
		},
		{
			name: "volatile", rate: 2, horizon: 365, halfLife: 35, class: Volatile,
			review: "18 days from now",
			recs: []string{
				"Decision requires frequent monitoring",
				"Plan for review every 14 days",
				"Identify key assumptions that drive volatility",
			},
		},
		{
			name: "stable_extrapolated", rate: 0.1, horizon: 365, halfLife: math.Ln2 / 0.001, class: Stable,
			review: "347 days from now",
			recs: []string{
				"Decision is highly stable",
				"Annual review recommended",
				"Monitor for black swan events that could invalidate assumptions",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Model(singleFactor(tt.rate, 0.5, tt.horizon))
			require.NoError(t, err)
			assert.InDelta(t, tt.halfLife, r.HalfLifeDays, 1e-9)
			assert.Equal(t, tt.class, r.DecayClassification)
			assert.Equal(t, tt.review, r.CriticalReviewDate)
			assert.Equal(t, tt.recs, r.Recommendations)
			assert.GreaterOrEqual(t, r.StabilityScore, 0.0)
			assert.LessOrEqual(t, r.StabilityScore, 100.0)
		})
	}
}

func TestModel_ShortHorizonExtrapolates(t *testing.T) {
	r, err := Model(singleFactor(0.5, 0.2, 30))
	require.NoError(t, err)
	assert.Len(t, r.ConfidenceTimeline, 31)
	assert.InDelta(t, 138.6294, r.HalfLifeDays, 1e-3)
	assert.Equal(t, "69 days from now", r.CriticalReviewDate)
}

func TestModel_AveragesFactors(t *testing.T) {
	cfg := Config{
		InitialConfidence: 80,
		DecayFactors: []Factor{
			{Name: "Regulation", DecayRate: 1, Volatility: 2},
			{Name: "Competition", DecayRate: 3, Volatility: 4},
		},
		TimeHorizonDays: 10,
	}
	r, err := Model(cfg)
	require.NoError(t, err)
	assert.InDelta(t, 80*math.Exp(-2.0*10/100), r.ConfidenceTimeline[10].Confidence, 1e-9)
	assert.InDelta(t, 3*math.Sqrt(10)/10, r.ConfidenceTimeline[10].UpperBound-r.ConfidenceTimeline[10].Confidence, 1e-9)
}

func TestModel_NoFactors(t *testing.T) {
	r, err := Model(Config{InitialConfidence: 90, TimeHorizonDays: 10})
	require.ErrorIs(t, err, ErrNoDecayFactors)
	assert.Nil(t, r)
}

func TestModel_ZeroRate(t *testing.T) {
	r, err := Model(singleFactor(0, 0, 5))
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.HalfLifeDays, 1))
	assert.Equal(t, Stable, r.DecayClassification)
	assert.Equal(t, 100.0, r.StabilityScore)
	assert.Equal(t, "4294967295 days from now", r.CriticalReviewDate)

	out, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Nil(t, decoded["half_life_days"])
	assert.Equal(t, "Stable", decoded["decay_classification"])
}

func TestResult_MarshalJSON(t *testing.T) {
	r, err := Model(singleFactor(0.5, 0.2, 2))
	require.NoError(t, err)
	out, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.InDelta(t, 138.6294, decoded["half_life_days"], 1e-3)
	assert.Len(t, decoded["confidence_timeline"], 3)
	assert.Contains(t, decoded, "critical_review_date")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Stable, Classify(180.5))
	assert.Equal(t, Moderate, Classify(180))
	assert.Equal(t, Moderate, Classify(60.1))
	assert.Equal(t, Volatile, Classify(60))
	assert.Equal(t, Volatile, Classify(14.1))
	assert.Equal(t, Critical, Classify(14))
	assert.Equal(t, Critical, Classify(0))
}
