// Package schemas embeds the JSON Schemas for every request document.
package schemas

import _ "embed"

//go:embed scoring-config.schema.json
var ScoringConfigSchemaJSON string

//go:embed report-request.schema.json
var ReportRequestSchemaJSON string

//go:embed risk-request.schema.json
var RiskRequestSchemaJSON string

//go:embed sensitivity-request.schema.json
var SensitivityRequestSchemaJSON string

//go:embed decay-request.schema.json
var DecayRequestSchemaJSON string

//go:embed decision.schema.json
var DecisionSchemaJSON string
