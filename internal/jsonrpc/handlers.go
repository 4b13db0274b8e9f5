package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/payload"
)

// Method names served by RegisterHandlers.
const (
	MethodReportEvaluate    = "report.evaluate"
	MethodRiskSimulate      = "risk.simulate"
	MethodSensitivity       = "sensitivity.analyze"
	MethodDecayModel        = "decay.model"
	MethodDecisionReadiness = "decision.readiness"
	MethodList              = "rpc.methods"
)

// HandlerContext provides shared state for method handlers.
type HandlerContext struct {
	svc *engine.Service
}

// NewHandlerContext creates a handler context over svc.
func NewHandlerContext(svc *engine.Service) *HandlerContext {
	return &HandlerContext{svc: svc}
}

// RegisterHandlers registers every analysis method plus rpc.methods.
func RegisterHandlers(registry *MethodRegistry, hctx *HandlerContext) {
	registry.RegisterWithSummary(MethodReportEvaluate,
		"Score a generated decision report for structure and quality", wrap(hctx.svc.EvaluateReport))
	registry.RegisterWithSummary(MethodRiskSimulate,
		"Run a Monte Carlo simulation over independent risk factors", wrap(hctx.svc.SimulateRisk))
	registry.RegisterWithSummary(MethodSensitivity,
		"Sweep each variable across its range and rank the score swing", wrap(hctx.svc.AnalyzeSensitivity))
	registry.RegisterWithSummary(MethodDecayModel,
		"Project how confidence in a decision decays over time", wrap(hctx.svc.ModelDecay))
	registry.RegisterWithSummary(MethodDecisionReadiness,
		"Check a decision record for readiness to act", wrap(hctx.svc.Readiness))
	registry.RegisterWithSummary(MethodList,
		"List the methods this server answers",
		func(_ context.Context, _ json.RawMessage) (any, *Error) {
			return map[string]any{"methods": registry.Methods(), "catalog": registry.Catalog()}, nil
		})
}

// wrap adapts a service call over raw params to a Handler.
func wrap[T any](call func([]byte) (T, error)) Handler {
	return func(_ context.Context, params json.RawMessage) (any, *Error) {
		if len(params) == 0 || string(params) == "null" {
			return nil, ErrInvalidParams("params object is required")
		}
		result, err := call(params)
		if err != nil {
			return nil, ToError(err)
		}
		return result, nil
	}
}

// ToError maps a service error to a JSON-RPC error. Schema violations carry
// their messages in Data.
func ToError(err error) *Error {
	var ve *payload.ValidationError
	switch {
	case errors.As(err, &ve):
		return ErrValidationFailed(string(ve.Kind), ve.Errors)
	case errors.Is(err, payload.ErrInvalidPayload):
		return ErrInvalidParams(err.Error())
	case errors.Is(err, engine.ErrAnalysisFailed):
		return ErrAnalysisFailed(err.Error())
	default:
		return ErrInternalError(err.Error())
	}
}
