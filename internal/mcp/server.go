package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/jsonrpc"
	"github.com/groundsdev/grounds/internal/webapi"
)

const protocolVersion = "2024-11-05"

// Server handles MCP protocol messages by delegating to the JSON-RPC
// analysis handlers.
type Server struct {
	reg    *jsonrpc.MethodRegistry
	logger *slog.Logger
}

// NewServer creates an MCP server backed by svc.
func NewServer(svc *engine.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := jsonrpc.NewMethodRegistry()
	jsonrpc.RegisterHandlers(reg, jsonrpc.NewHandlerContext(svc))
	return &Server{reg: reg, logger: logger}
}

// HandleRequest processes a single MCP JSON-RPC request and returns a response.
func (s *Server) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "ping":
		return &jsonrpc.Response{JSONRPC: jsonrpc.Version, Result: struct{}{}, ID: req.ID}
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return &jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			Error:   jsonrpc.ErrMethodNotFound(req.Method),
			ID:      req.ID,
		}
	}
}

// --- initialize ---

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools *toolsCap `json:"tools,omitempty"`
}

type toolsCap struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(req *jsonrpc.Request) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: jsonrpc.Version,
		Result: initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    capabilities{Tools: &toolsCap{}},
			ServerInfo:      serverInfo{Name: "grounds", Version: webapi.Version},
		},
		ID: req.ID,
	}
}

// --- tools/list ---

type toolsListResult struct {
	Tools []Tool `json:"tools"`
}

func (s *Server) handleToolsList(req *jsonrpc.Request) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: jsonrpc.Version,
		Result:  toolsListResult{Tools: ToolsDef()},
		ID:      req.ID,
	}
}

// --- tools/call ---

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolsCallResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func errorResult(id json.RawMessage, text string) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: jsonrpc.Version,
		Result: toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: text}},
			IsError: true,
		},
		ID: id,
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	var p toolsCallParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return &jsonrpc.Response{
			JSONRPC: jsonrpc.Version,
			Error:   jsonrpc.ErrInvalidParams(err.Error()),
			ID:      req.ID,
		}
	}

	result, rpcErr := s.dispatchTool(ctx, p.Name, p.Arguments)
	if rpcErr != nil {
		s.logger.Debug("mcp tool error", "tool", p.Name, "error", rpcErr.Message)
		return errorResult(req.ID, toolErrorText(rpcErr))
	}

	text, err := json.Marshal(result)
	if err != nil {
		return errorResult(req.ID, fmt.Sprintf("marshal error: %v", err))
	}

	return &jsonrpc.Response{
		JSONRPC: jsonrpc.Version,
		Result: toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: string(text)}},
		},
		ID: req.ID,
	}
}

// toolErrorText includes validation details so the client can fix its call.
func toolErrorText(e *jsonrpc.Error) string {
	if msgs, ok := e.Data.([]string); ok && len(msgs) > 0 {
		text := e.Message + ":"
		for _, m := range msgs {
			text += "\n" + m
		}
		return text
	}
	if d, ok := e.Data.(string); ok && d != "" {
		return e.Message + ": " + d
	}
	return e.Message
}

// toolMethods maps MCP tool names to JSON-RPC methods.
var toolMethods = map[string]string{
	ToolEvaluateReport:     jsonrpc.MethodReportEvaluate,
	ToolSimulateRisk:       jsonrpc.MethodRiskSimulate,
	ToolAnalyzeSensitivity: jsonrpc.MethodSensitivity,
	ToolModelDecay:         jsonrpc.MethodDecayModel,
	ToolDecisionReadiness:  jsonrpc.MethodDecisionReadiness,
}

// dispatchTool maps an MCP tool call onto its JSON-RPC handler.
func (s *Server) dispatchTool(ctx context.Context, name string, args json.RawMessage) (any, *jsonrpc.Error) {
	method, ok := toolMethods[name]
	if !ok {
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeMethodNotFound, Message: fmt.Sprintf("unknown tool: %s", name)}
	}
	handler := s.reg.Lookup(method)
	if handler == nil {
		return nil, jsonrpc.ErrMethodNotFound(method)
	}
	if args == nil {
		args = json.RawMessage(`{}`)
	}
	return handler(ctx, args)
}
