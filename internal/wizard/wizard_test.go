package wizard

import (
	"testing"

	"github.com/groundsdev/grounds/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultAnswers(t *testing.T) {
	a := DefaultAnswers(projectconfig.New())

	assert.Equal(t, "BEST OPTION, RATIONALE, TOP RISKS, ASSUMPTIONS TO VALIDATE, HALF-LIFE, BLIND SPOTS, NEXT ACTIONS", a.RequiredHeaders)
	assert.Equal(t, "6", a.MinNextActions)
	assert.True(t, a.QualityMetrics)
	assert.Equal(t, "10000", a.Iterations)
	assert.Equal(t, "4", a.Workers)
	assert.Empty(t, a.AccountURL)
}

func TestApply_DefaultsRoundTrip(t *testing.T) {
	base := projectconfig.New()
	cfg, err := DefaultAnswers(base).Apply(base)
	require.NoError(t, err)

	assert.Equal(t, base.Scoring.RequiredHeaders, cfg.Scoring.RequiredHeaders)
	assert.Equal(t, 6, *cfg.Scoring.MinNextActions)
	assert.Equal(t, 10000, cfg.MonteCarlo.Iterations)
}

func TestApply_Overrides(t *testing.T) {
	base := projectconfig.New()
	base.Path = "/tmp/.grounds.yaml"

	cfg, err := Answers{
		RequiredHeaders: "best option, next actions,,",
		MinNextActions:  " 3 ",
		QualityMetrics:  false,
		Iterations:      "2000",
		Workers:         "2",
		AccountURL:      "https://acct.blob.core.windows.net",
		Container:       "results",
	}.Apply(base)
	require.NoError(t, err)

	assert.Equal(t, []string{"BEST OPTION", "NEXT ACTIONS"}, cfg.Scoring.RequiredHeaders)
	assert.Equal(t, 3, *cfg.Scoring.MinNextActions)
	assert.False(t, *cfg.Scoring.QualityMetrics)
	assert.Equal(t, 2000, cfg.MonteCarlo.Iterations)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.True(t, cfg.Publish.Enabled())
	assert.Empty(t, cfg.Path)

	// The base config is untouched.
	assert.Equal(t, 4, base.Batch.Workers)
	assert.Equal(t, 6, *base.Scoring.MinNextActions)
}

func TestApply_Errors(t *testing.T) {
	base := projectconfig.New()
	valid := DefaultAnswers(base)

	tests := []struct {
		name   string
		mutate func(*Answers)
		want   string
	}{
		{"no headers", func(a *Answers) { a.RequiredHeaders = " , " }, "at least one section is required"},
		{"bad min actions", func(a *Answers) { a.MinNextActions = "six" }, "minimum next actions must be a whole number"},
		{"negative min actions", func(a *Answers) { a.MinNextActions = "-1" }, "minimum next actions must be at least 0"},
		{"zero iterations", func(a *Answers) { a.Iterations = "0" }, "iterations must be at least 1"},
		{"zero workers", func(a *Answers) { a.Workers = "0" }, "workers must be at least 1"},
		{"half publish", func(a *Answers) { a.Container = "results" }, "publishing needs both an account URL and a container"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			_, err := a.Apply(base)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render(projectconfig.New())
	require.NoError(t, err)

	assert.Contains(t, string(out), "# grounds project configuration")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Contains(t, doc, "scoring")
	assert.Contains(t, doc, "batch")
	assert.NotContains(t, doc, "publish")
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "hello", []string{"hello"}},
		{"multiple", "a, b, c", []string{"a", "b", "c"}},
		{"with blanks", "a,, b, ,c", []string{"a", "b", "c"}},
		{"whitespace only", "  ,  ,  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAndTrim(tt.input))
		})
	}
}
