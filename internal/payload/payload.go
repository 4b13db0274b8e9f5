// Package payload decodes JSON or YAML request documents into typed
// analysis requests. Every document is validated against its embedded
// schema before it is decoded.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/groundsdev/grounds/internal/decay"
	"github.com/groundsdev/grounds/internal/models"
	"github.com/groundsdev/grounds/internal/scoring"
	"github.com/groundsdev/grounds/internal/sensitivity"
	"github.com/groundsdev/grounds/internal/statistics"
	"github.com/groundsdev/grounds/internal/validation"
	"gopkg.in/yaml.v3"
)

// ErrInvalidPayload is wrapped by every error Decode returns for a document
// that cannot be parsed or does not match its schema.
var ErrInvalidPayload = errors.New("invalid payload")

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	Kind   validation.Kind
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s document failed validation: %s", e.Kind, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidPayload
}

// ReportRequest asks for one report to be scored.
type ReportRequest struct {
	Text   string          `json:"text" mapstructure:"text"`
	Config *scoring.Config `json:"config,omitempty" mapstructure:"config"`
}

// RiskRequest asks for a Monte Carlo simulation.
type RiskRequest struct {
	BaseScore  float64                     `json:"base_score" mapstructure:"base_score"`
	Risks      []models.RiskFactor         `json:"risks" mapstructure:"risks"`
	MonteCarlo statistics.MonteCarloConfig `json:"monte_carlo" mapstructure:"monte_carlo"`
}

// SensitivityRequest asks for a sensitivity sweep.
type SensitivityRequest struct {
	BaseScore float64                `json:"base_score" mapstructure:"base_score"`
	Variables []sensitivity.Variable `json:"variables" mapstructure:"variables"`
	StepCount int                    `json:"step_count" mapstructure:"step_count"`
}

// Config returns the sweep configuration carried by the request.
func (r *SensitivityRequest) Config() sensitivity.Config {
	return sensitivity.Config{Variables: r.Variables, StepCount: r.StepCount}
}

// DecayRequest asks for a decay projection.
type DecayRequest = decay.Config

// Decode parses data as JSON or YAML, validates it against the schema for
// kind and decodes it into out. Fields already set on out are kept when the
// document omits them, so callers pre-fill defaults.
func Decode(data []byte, kind validation.Kind, out any) error {
	doc, err := parse(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return DecodeValue(doc, kind, out)
}

// DecodeValue validates an already parsed document and decodes it into out.
func DecodeValue(doc any, kind validation.Kind, out any) error {
	doc = validation.Normalize(doc)
	if errs := validation.Validate(kind, doc); len(errs) > 0 {
		return &ValidationError{Kind: kind, Errors: errs}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.DecodeHookFuncType(wholeNumberHook),
		),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// DecodeReport decodes a report request. A config in the document overlays
// defaults field by field.
func DecodeReport(data []byte, defaults scoring.Config) (*ReportRequest, error) {
	cfg := defaults
	cfg.RequiredHeaders = nil
	req := &ReportRequest{Config: &cfg}
	if err := Decode(data, validation.KindReport, req); err != nil {
		return nil, err
	}
	if req.Config.RequiredHeaders == nil {
		req.Config.RequiredHeaders = slices.Clone(defaults.RequiredHeaders)
	}
	return req, nil
}

// DecodeRisk decodes a risk request over the given Monte Carlo defaults.
func DecodeRisk(data []byte, defaults statistics.MonteCarloConfig) (*RiskRequest, error) {
	req := &RiskRequest{MonteCarlo: defaults}
	if err := Decode(data, validation.KindRisk, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeSensitivity decodes a sensitivity request. defaultSteps applies
// when the document has no step_count.
func DecodeSensitivity(data []byte, defaultSteps int) (*SensitivityRequest, error) {
	req := &SensitivityRequest{StepCount: defaultSteps}
	if err := Decode(data, validation.KindSensitivity, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeDecay decodes a decay request.
func DecodeDecay(data []byte) (*DecayRequest, error) {
	req := &DecayRequest{}
	if err := Decode(data, validation.KindDecay, req); err != nil {
		return nil, err
	}
	return req, nil
}

// wholeNumberHook rewrites a json.Number such as 1000.0 or 1e3 into plain
// integer form when it is bound for an integer field. Schema validation has
// already rejected values with a fractional part.
func wholeNumberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		return data, nil
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return data, nil
	}
	return json.Number(r.Num().String()), nil
}

// parse reads JSON objects and arrays with json.Number so integers keep
// their precision; everything else goes through the YAML parser.
func parse(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	var doc any
	if trimmed[0] == '{' || trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	return doc, nil
}
