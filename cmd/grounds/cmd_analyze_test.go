package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/groundsdev/grounds/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRequest writes body to name in a fresh working directory.
func writeRequest(t *testing.T, name, body string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSimulate_NoRisks(t *testing.T) {
	path := writeRequest(t, "risk.json", `{"base_score": 85, "risks": [], "monte_carlo": {"iterations": 100}}`)

	out, err := runCLI(t, "", "simulate", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 85.0, got["mean_score"])
	assert.Equal(t, 100.0, got["iterations_run"])
}

func TestSimulate_Text(t *testing.T) {
	path := writeRequest(t, "risk.yaml", "base_score: 85\nrisks: []\nmonte_carlo:\n  iterations: 50\n")

	out, err := runCLI(t, "", "simulate", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Mean score:      85.00")
	assert.Contains(t, out, "Iterations:      50")
}

func TestSensitivity_NoVariables(t *testing.T) {
	path := writeRequest(t, "sens.json", `{"base_score": 80, "variables": []}`)

	out, err := runCLI(t, "", "sensitivity", path, "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "VARIABLE")
	assert.Contains(t, out, "Decision appears robust to variable changes")
}

func TestDecay_ReferenceScenario(t *testing.T) {
	path := writeRequest(t, "decay.json", `{
  "initial_confidence": 90,
  "decay_factors": [{"name": "Market Changes", "decay_rate": 0.5, "volatility": 0.2}],
  "time_horizon_days": 365
}`)

	out, err := runCLI(t, "", "decay", path, "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Half-life:      139 days")
	assert.Contains(t, out, "Classification: Moderate")
	assert.Contains(t, out, "Review:         70 days from now")
	assert.Contains(t, out, "Schedule quarterly review (every 70 days)")

	out, err = runCLI(t, "", "decay", path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 139.0, got["half_life_days"])
	assert.Len(t, got["confidence_timeline"], 366)
}

func TestDecay_InvalidRequest(t *testing.T) {
	path := writeRequest(t, "decay.json", `{"initial_confidence": 90, "decay_factors": [], "time_horizon_days": 30}`)

	_, err := runCLI(t, "", "decay", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, payload.ErrInvalidPayload))
	assert.Contains(t, err.Error(), "/decay_factors")
}

func TestAnalysis_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCLI(t, "", "simulate", "nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening nope.json")

	_, err = runCLI(t, "", "decay", "nope.json", "-f", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "csv"`)
}
