package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/groundsdev/grounds/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind names a document type that has an embedded schema.
type Kind string

const (
	KindScoringConfig Kind = "scoring-config"
	KindReport        Kind = "report"
	KindRisk          Kind = "risk"
	KindSensitivity   Kind = "sensitivity"
	KindDecay         Kind = "decay"
	KindDecision      Kind = "decision"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{KindScoringConfig, KindReport, KindRisk, KindSensitivity, KindDecay, KindDecision}

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

var compiled map[Kind]*jsonschema.Schema

func init() {
	compiled = map[Kind]*jsonschema.Schema{
		KindScoringConfig: mustCompileSchema(schemas.ScoringConfigSchemaJSON, "scoring-config.schema.json"),
		KindReport:        mustCompileSchema(schemas.ReportRequestSchemaJSON, "report-request.schema.json"),
		KindRisk:          mustCompileSchema(schemas.RiskRequestSchemaJSON, "risk-request.schema.json"),
		KindSensitivity:   mustCompileSchema(schemas.SensitivityRequestSchemaJSON, "sensitivity-request.schema.json"),
		KindDecay:         mustCompileSchema(schemas.DecayRequestSchemaJSON, "decay-request.schema.json"),
		KindDecision:      mustCompileSchema(schemas.DecisionSchemaJSON, "decision.schema.json"),
	}
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Validate checks an already-decoded document against the schema for kind.
// It returns one message per failing leaf, prefixed with the instance path.
func Validate(kind Kind, instance any) []string {
	schema, ok := compiled[kind]
	if !ok {
		return []string{fmt.Sprintf("unknown document kind %q", kind)}
	}
	return validateAgainstSchema(schema, convertToJSONCompatible(instance))
}

// Normalize returns doc in the shape the validator sees: string map keys
// and timestamps as RFC 3339 strings.
func Normalize(doc any) any {
	return convertToJSONCompatible(doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible normalizes decoded documents for the validator.
// yaml.v3 produces map[any]any when a mapping has non-string keys; those
// keys are stringified. time.Time values from callers become RFC 3339
// strings. Integer values are kept as-is.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return val
	}
}
