package decision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullRecordJSON = `{
  "title": "Adopt event sourcing for orders",
  "context": "The orders service has outgrown its CRUD model. Auditors need a full change history and two teams want to consume order events downstream.",
  "intent": "Give downstream teams a reliable order event stream",
  "options": ["Event sourcing", "Keep CRUD with audit table", "Change data capture"],
  "assumptions": ["Event volume stays under 2k per second", "Kafka cluster can be shared"],
  "risks": ["Team has little event sourcing experience", "Projection rebuilds may be slow"],
  "evidence": ["Audit findings 2024-Q4", "Load test of event store prototype"],
  "confidence": "medium",
  "createdAtISO": "2025-01-15T09:00:00Z",
  "outcome": null
}`

const fullReport = `BEST OPTION:
Event sourcing

RATIONALE:
The orders service has outgrown its CRUD model. Auditors need a full change history and two teams want to consume order events downstream.
Give downstream teams a reliable order event stream

TOP RISKS:
- Team has little event sourcing experience
- Projection rebuilds may be slow

ASSUMPTIONS TO VALIDATE:
- Event volume stays under 2k per second
- Kafka cluster can be shared

HALF-LIFE:
Confidence medium, recorded 2025-01-15T09:00:00Z

BLIND SPOTS:
- Alternative not taken: Keep CRUD with audit table
- Alternative not taken: Change data capture

NEXT ACTIONS:
- Validate assumption: Event volume stays under 2k per second
- Validate assumption: Kafka cluster can be shared
- Mitigate risk: Team has little event sourcing experience
- Mitigate risk: Projection rebuilds may be slow
- Confirm evidence is current: Audit findings 2024-Q4
- Confirm evidence is current: Load test of event store prototype
`

func TestParse_FullRecord(t *testing.T) {
	rec, err := Parse([]byte(fullRecordJSON))
	require.NoError(t, err)

	assert.Equal(t, "Adopt event sourcing for orders", rec.Title)
	assert.Len(t, rec.Options, 3)
	assert.Equal(t, "2025-01-15T09:00:00Z", rec.CreatedAtISO)
	assert.Nil(t, rec.Outcome)
}

func TestParse_YAML(t *testing.T) {
	rec, err := Parse([]byte("title: Pick a vendor\noptions: [A, B]\noutcome: Chose A\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, rec.Options)
	require.NotNil(t, rec.Outcome)
	assert.Equal(t, "Chose A", *rec.Outcome)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"context": "no title"}`))
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Parse([]byte(`{"title": "x", "options": "not a list"}`))
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision.json")
	require.NoError(t, os.WriteFile(path, []byte(fullRecordJSON), 0644))

	rec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "medium", rec.Confidence)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestReadiness(t *testing.T) {
	full, err := Parse([]byte(fullRecordJSON))
	require.NoError(t, err)

	outcome := "Shipped in March"
	tests := []struct {
		name  string
		rec   *Record
		score int
		note  string
		gaps  []string
	}{
		{
			name:  "complete",
			rec:   full,
			score: 100,
			note:  "Readiness analysis for: Adopt event sourcing for orders",
		},
		{
			name:  "title_only",
			rec:   &Record{Title: "Untitled"},
			score: 0,
			note:  "Readiness analysis for: Untitled",
			gaps: []string{
				"context is missing",
				"intent is not stated",
				"no options listed",
				"no assumptions listed",
				"no risks listed",
				"no evidence listed",
				"confidence is not labelled low, medium or high",
			},
		},
		{
			name: "partial",
			rec: &Record{
				Title:       "Hire a contractor",
				Context:     "Backlog grew over two sprints",
				Intent:      "Ship the billing rewrite",
				Options:     []string{"Contractor", "  "},
				Assumptions: []string{"Budget approved"},
				Evidence:    []string{"Velocity chart"},
				Confidence:  "Unsure",
				Outcome:     &outcome,
			},
			score: 43,
			note:  "Readiness analysis for: Hire a contractor (outcome recorded)",
			gaps: []string{
				"context is brief",
				"only one option considered",
				"no risks listed",
				"confidence is not labelled low, medium or high",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Readiness(tt.rec)
			assert.Equal(t, tt.score, a.ReadinessScore)
			assert.Equal(t, tt.note, a.Note)
			assert.Equal(t, tt.gaps, a.Gaps)
		})
	}
}

func TestReportText_Complete(t *testing.T) {
	rec, err := Parse([]byte(fullRecordJSON))
	require.NoError(t, err)

	text := rec.ReportText()
	assert.Equal(t, fullReport, text)

	r := scoring.Evaluate(text, scoring.DefaultConfig())
	assert.Equal(t, 100, r.Score)
	assert.Empty(t, r.MissingHeaders)
	assert.Empty(t, r.EmptySections)
	assert.Equal(t, 6, r.NextActionsCount)
	assert.False(t, r.MustRepair)
}

func TestReportText_EmptyRecord(t *testing.T) {
	rec := &Record{Title: "Empty"}
	r := scoring.Evaluate(rec.ReportText(), scoring.DefaultConfig())

	assert.Empty(t, r.MissingHeaders)
	assert.Equal(t, []string{
		"BEST OPTION",
		"RATIONALE",
		"TOP RISKS",
		"ASSUMPTIONS TO VALIDATE",
		"HALF-LIFE",
		"NEXT ACTIONS",
	}, r.EmptySections)
	assert.Zero(t, r.NextActionsCount)
	assert.True(t, r.MustRepair)
}
