package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Handler processes a JSON-RPC request and returns a result or error.
type Handler func(ctx context.Context, params json.RawMessage) (any, *Error)

// MethodInfo describes a registered method for rpc.methods.
type MethodInfo struct {
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

type method struct {
	handler Handler
	summary string
}

// MethodRegistry maps method names to handlers. It is filled before the
// server starts and read-only afterwards.
type MethodRegistry struct {
	methods map[string]method
}

// NewMethodRegistry creates an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]method)}
}

// Register adds a handler under name. Registering the same name twice
// panics.
func (r *MethodRegistry) Register(name string, handler Handler) {
	r.RegisterWithSummary(name, "", handler)
}

// RegisterWithSummary is Register with a one-line description reported by
// Catalog.
func (r *MethodRegistry) RegisterWithSummary(name, summary string, handler Handler) {
	if name == "" || handler == nil {
		panic("jsonrpc: method needs a name and a handler")
	}
	if _, dup := r.methods[name]; dup {
		panic(fmt.Sprintf("jsonrpc: method %q registered twice", name))
	}
	r.methods[name] = method{handler: handler, summary: summary}
}

// Lookup returns the handler for a method, or nil if not found.
func (r *MethodRegistry) Lookup(name string) Handler {
	return r.methods[name].handler
}

// Methods returns all registered method names, sorted.
func (r *MethodRegistry) Methods() []string {
	return slices.Sorted(maps.Keys(r.methods))
}

// Catalog returns every method with its summary, sorted by name.
func (r *MethodRegistry) Catalog() []MethodInfo {
	names := r.Methods()
	out := make([]MethodInfo, len(names))
	for i, n := range names {
		out[i] = MethodInfo{Name: n, Summary: r.methods[n].summary}
	}
	return out
}
