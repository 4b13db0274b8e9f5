package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/groundsdev/grounds/internal/reporting"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func testBatch() *reporting.Batch {
	return &reporting.Batch{
		RunID:    "run-1",
		Name:     "weekly",
		Duration: 1500 * time.Millisecond,
		Reports: []reporting.ScoredReport{
			{Name: "ready.md", Result: scoring.Evaluate(completeReport, scoring.DefaultConfig())},
			{Name: "partial.md", Result: scoring.Evaluate(partialReport, scoring.DefaultConfig())},
			{Name: "gone.md", Error: "opening gone.md: no such file"},
		},
	}
}

func TestFormatMarkdownSummary(t *testing.T) {
	b := testBatch()
	md := FormatMarkdownSummary(b, reporting.Summarize(b, reporting.DefaultConfidenceLevel))

	assert.True(t, strings.HasPrefix(md, "## Grounds Report Scores\n"))
	assert.Contains(t, md, "**Duration:** 1.5s")
	assert.Contains(t, md, "- **Reports:** 3 total, 1 ready, 1 need repair, 1 unreadable")
	assert.Contains(t, md, "| gone.md | - | - | ⚠️ |")
	assert.Contains(t, md, "#### gone.md\n\n- opening gone.md: no such file")
	assert.Contains(t, md, "- missing **NEXT ACTIONS**")
	assert.Contains(t, md, "**Batch:** weekly | **Run:** run-1")
}

func TestFormatMarkdownSummary_AllPassed(t *testing.T) {
	b := testBatch()
	b.Reports = b.Reports[:1]
	md := FormatMarkdownSummary(b, reporting.Summarize(b, reporting.DefaultConfidenceLevel))

	assert.Contains(t, md, "✅ Passed")
	assert.NotContains(t, md, "Repair Details")
}

func TestWriteScoreTable(t *testing.T) {
	var buf bytes.Buffer
	writeScoreTable(&buf, testBatch())

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "REPORT      SCORE    FINISH"))
	assert.Contains(t, lines[3], "⚠️ unreadable")
	assert.Contains(t, buf.String(), "3 report(s) in 1.5s")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	// Wide runes count double.
	assert.Equal(t, "日本 ", padRight("日本", 5))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short.md", truncateName("short.md", 10))
	assert.Equal(t, "abcd…", truncateName("abcdefgh", 5))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", formatDuration(2500*time.Millisecond))
}
