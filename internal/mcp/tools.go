package mcp

import (
	"encoding/json"

	"github.com/groundsdev/grounds/schemas"
)

// Tool names exposed over MCP.
const (
	ToolEvaluateReport     = "grounds_evaluate_report"
	ToolSimulateRisk       = "grounds_simulate_risk"
	ToolAnalyzeSensitivity = "grounds_analyze_sensitivity"
	ToolModelDecay         = "grounds_model_decay"
	ToolDecisionReadiness  = "grounds_decision_readiness"
)

// Tool describes an MCP tool with its input schema.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolsDef returns the tools exposed by grounds. Input schemas are the
// same documents the request validator enforces.
func ToolsDef() []Tool {
	return []Tool{
		{
			Name:        ToolEvaluateReport,
			Description: "Score a decision report for required sections, next actions, truncation and writing quality",
			InputSchema: json.RawMessage(schemas.ReportRequestSchemaJSON),
		},
		{
			Name:        ToolSimulateRisk,
			Description: "Run a seeded Monte Carlo simulation of how risk factors erode a decision score",
			InputSchema: json.RawMessage(schemas.RiskRequestSchemaJSON),
		},
		{
			Name:        ToolAnalyzeSensitivity,
			Description: "Sweep decision variables across their ranges and rank them by score impact",
			InputSchema: json.RawMessage(schemas.SensitivityRequestSchemaJSON),
		},
		{
			Name:        ToolModelDecay,
			Description: "Project how confidence in a decision decays over time and when to review it",
			InputSchema: json.RawMessage(schemas.DecayRequestSchemaJSON),
		},
		{
			Name:        ToolDecisionReadiness,
			Description: "Score how ready a decision record is to act on and list its gaps",
			InputSchema: json.RawMessage(schemas.DecisionSchemaJSON),
		},
	}
}
