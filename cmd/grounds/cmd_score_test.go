package main

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeReport = `BEST OPTION:
Choose Option A for maximum ROI.

RATIONALE:
- Cost effective
- Proven technology

TOP RISKS:
- Market volatility
- Technical debt

ASSUMPTIONS TO VALIDATE:
- Budget approved
- Team available

HALF-LIFE:
6 months - review quarterly

BLIND SPOTS:
- Competitor moves
- Regulatory changes

NEXT ACTIONS:
1. Get budget approval by Friday
2. Schedule kickoff meeting
3. Assign project lead
4. Create project charter
5. Set up tracking
6. Send stakeholder update
`

const partialReport = `BEST OPTION:
Go with the vendor.
`

// writeReports creates ready.md and partial.md in a fresh working directory.
func writeReports(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ready.md"), []byte(completeReport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.md"), []byte(partialReport), 0o644))
	return dir
}

func TestScore_SingleReportJSON(t *testing.T) {
	writeReports(t)

	out, err := runCLI(t, "", "score", "ready.md", "--format", "json")
	require.NoError(t, err)

	var r scoring.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.False(t, r.MustRepair)
	assert.Empty(t, r.MissingHeaders)
	assert.Equal(t, 6, r.NextActionsCount)
}

func TestScore_BatchJSON(t *testing.T) {
	writeReports(t)

	out, err := runCLI(t, "", "score", "ready.md", "partial.md", "missing.md", "-f", "json", "--name", "weekly")
	require.NoError(t, err)

	var doc struct {
		RunID   string                   `json:"run_id"`
		Name    string                   `json:"name"`
		Reports []reporting.ScoredReport `json:"reports"`
		Summary reporting.Summary        `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, "weekly", doc.Name)
	require.Len(t, doc.Reports, 3)
	assert.Equal(t, "ready.md", doc.Reports[0].Name)
	assert.Equal(t, "partial.md", doc.Reports[1].Name)
	assert.True(t, doc.Reports[1].Result.MustRepair)
	assert.Nil(t, doc.Reports[2].Result)
	assert.Contains(t, doc.Reports[2].Error, "missing.md")

	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Passed)
	assert.Equal(t, 1, doc.Summary.MustRepair)
	assert.Equal(t, 1, doc.Summary.Errors)
}

func TestScore_Strict(t *testing.T) {
	writeReports(t)

	_, err := runCLI(t, "", "score", "ready.md", "--strict", "-f", "json")
	require.NoError(t, err)

	_, err = runCLI(t, "", "score", "ready.md", "partial.md", "--strict", "-f", "json")
	require.Error(t, err)
	var reportErr *ReportFailureError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, "1 of 2 report(s) need repair, 0 could not be read", reportErr.Message)
}

func TestScore_Formats(t *testing.T) {
	writeReports(t)

	tests := []struct {
		format string
		want   []string
	}{
		{formatText, []string{"REPORT", "SCORE", "FINISH", "partial.md", "❌ repair", "=== Interpretation ==="}},
		{formatJUnit, []string{"<?xml", "<testsuites", `name="ready.md"`, `type="MustRepair"`}},
		{formatMarkdown, []string{"## Grounds Report Scores", "❌ Needs repair", "| partial.md |", "### Repair Details", "missing **RATIONALE**"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCLI(t, "", "score", "ready.md", "partial.md", "--format", tt.format)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestScore_OutputFile(t *testing.T) {
	dir := writeReports(t)
	target := filepath.Join(dir, "results.xml")

	out, err := runCLI(t, "", "score", "ready.md", "-f", "junit", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), "<testsuites")
}

func TestScore_OutputFileDefaultsToJSON(t *testing.T) {
	dir := writeReports(t)
	target := filepath.Join(dir, "results.json")

	out, err := runCLI(t, "", "score", "ready.md", "partial.md", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "summary")
}

func TestScore_DefaultFormatIsJSONWhenPiped(t *testing.T) {
	writeReports(t)

	out, err := runCLI(t, "", "score", "partial.md")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Equal(t, formatJSON, defaultFormat(&strings.Builder{}))
}

func TestScore_Gzip(t *testing.T) {
	dir := writeReports(t)

	f, err := os.Create(filepath.Join(dir, "ready.md.gz"))
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(completeReport))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out, err := runCLI(t, "", "score", "ready.md.gz", "partial.md", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "ready.md"`)
}

func TestScore_Errors(t *testing.T) {
	writeReports(t)

	_, err := runCLI(t, "", "score", "ready.md", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)

	_, err = runCLI(t, "", "score", "ready.md", "--workers", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--workers must be at least 1")
}

func TestScore_ProjectConfig(t *testing.T) {
	dir := writeReports(t)

	// A template with a single section makes the partial report ready.
	cfg := "scoring:\n  required_headers: [BEST OPTION]\n  min_next_actions: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".grounds.yaml"), []byte(cfg), 0o644))

	out, err := runCLI(t, "", "score", "partial.md", "-f", "json")
	require.NoError(t, err)

	var r scoring.Result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Empty(t, r.MissingHeaders)
}

func TestScore_InvalidProjectConfig(t *testing.T) {
	dir := writeReports(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".grounds.yaml"), []byte("batch:\n  workers: -2\n"), 0o644))

	_, err := runCLI(t, "", "score", "ready.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.workers must be at least 1")
}

func TestScore_PublishNotConfigured(t *testing.T) {
	writeReports(t)

	_, err := runCLI(t, "", "score", "ready.md", "-f", "json", "--publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
