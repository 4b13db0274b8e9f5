package statistics

import "math"

// Scenario names one band of the simulated score distribution.
type Scenario string

const (
	ScenarioExcellent  Scenario = "Excellent"
	ScenarioGood       Scenario = "Good"
	ScenarioAcceptable Scenario = "Acceptable"
	ScenarioPoor       Scenario = "Poor"
	ScenarioFailure    Scenario = "Failure"
)

// ScenarioOutcome is the share of trials that landed in one band. The
// score impact is a fixed annotation of the band, not a simulated value.
type ScenarioOutcome struct {
	ScenarioName Scenario `json:"scenario_name"`
	Probability  float64  `json:"probability"`
	ScoreImpact  float64  `json:"score_impact"`
	Description  string   `json:"description"`
}

type scenarioBand struct {
	name        Scenario
	lower       float64 // inclusive
	upper       float64 // exclusive
	impact      float64
	description string
}

var scenarioBands = []scenarioBand{
	{ScenarioExcellent, 90, math.Inf(1), 0, "Decision achieves all objectives with minimal issues"},
	{ScenarioGood, 75, 90, -10, "Decision succeeds with minor adjustments needed"},
	{ScenarioAcceptable, 60, 75, -25, "Decision achieves basic objectives but with challenges"},
	{ScenarioPoor, 40, 60, -45, "Decision faces significant obstacles, requires revision"},
	{ScenarioFailure, math.Inf(-1), 40, -70, "Decision likely to fail without major intervention"},
}

// CategorizeScenarios partitions scores into the five fixed bands. An empty
// input yields zero probability for every band.
func CategorizeScenarios(scores []float64) []ScenarioOutcome {
	out := make([]ScenarioOutcome, 0, len(scenarioBands))
	for _, b := range scenarioBands {
		count := 0
		for _, s := range scores {
			if s >= b.lower && s < b.upper {
				count++
			}
		}

		p := 0.0
		if len(scores) > 0 {
			p = float64(count) / float64(len(scores))
		}
		out = append(out, ScenarioOutcome{
			ScenarioName: b.name,
			Probability:  p,
			ScoreImpact:  b.impact,
			Description:  b.description,
		})
	}
	return out
}
