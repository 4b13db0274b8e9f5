package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/groundsdev/grounds/internal/decision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness_TitleOnly(t *testing.T) {
	path := writeRequest(t, "decision.yaml", "title: Move to ARM\n")

	out, err := runCLI(t, "", "readiness", path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0.0, got["readiness_score"])
	assert.NotContains(t, got, "template")
}

func TestReadiness_ScoreTemplate(t *testing.T) {
	path := writeRequest(t, "decision.json", `{
  "title": "Adopt event sourcing",
  "intent": "Audit trail for orders",
  "options": ["Keep CRUD", "Event sourcing"],
  "risks": ["Team unfamiliar"],
  "confidence": "medium"
}`)

	out, err := runCLI(t, "", "readiness", path, "--score-template")
	require.NoError(t, err)

	var got struct {
		ReadinessScore int `json:"readiness_score"`
		Template       *struct {
			Score int `json:"score"`
		} `json:"template"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Positive(t, got.ReadinessScore)
	require.NotNil(t, got.Template)

	out, err = runCLI(t, "", "readiness", path, "--score-template", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Readiness: ")
	assert.Contains(t, out, "Score: ")
}

func TestReadiness_InvalidRecord(t *testing.T) {
	path := writeRequest(t, "decision.json", `{"options": ["A"]}`)

	_, err := runCLI(t, "", "readiness", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, decision.ErrInvalidRecord))
}
