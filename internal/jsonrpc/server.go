package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// Server handles JSON-RPC 2.0 requests over a Transport.
type Server struct {
	registry *MethodRegistry
	logger   *slog.Logger
}

// NewServer creates a JSON-RPC server with the given method registry.
func NewServer(registry *MethodRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: registry, logger: logger}
}

// ServeTransport reads requests from the transport and writes responses.
// It runs until the reader returns io.EOF, a read error occurs or ctx is
// done. ctx is passed to every handler.
func (s *Server) ServeTransport(ctx context.Context, t *Transport) {
	for ctx.Err() == nil {
		req, rawJSON, err := t.ReadRequest()
		if err != nil {
			if err == io.EOF {
				return
			}
			s.logger.Debug("read error", "error", err)
			s.write(t, NewErrorResponse(nil, ErrParseError(err.Error())))
			return
		}

		// Requests without an "id" key are notifications and get no response.
		isNotification := !hasIDField(rawJSON)

		resp := s.handle(ctx, req)
		if isNotification {
			continue
		}
		if !s.write(t, resp) {
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, req *Request) *Response {
	if req.JSONRPC != Version {
		return NewErrorResponse(req.ID, ErrInvalidRequest(fmt.Sprintf("jsonrpc field must be %q", Version)))
	}

	handler := s.registry.Lookup(req.Method)
	if handler == nil {
		return NewErrorResponse(req.ID, ErrMethodNotFound(req.Method))
	}

	s.logger.Debug("rpc call", "method", req.Method)
	result, rpcErr := handler(ctx, req.Params)
	if rpcErr != nil {
		s.logger.Debug("rpc error", "method", req.Method, "code", rpcErr.Code, "message", rpcErr.Message)
		return NewErrorResponse(req.ID, rpcErr)
	}
	return NewResult(req.ID, result)
}

func (s *Server) write(t *Transport, resp *Response) bool {
	if err := t.WriteResponse(resp); err != nil {
		s.logger.Debug("write error", "error", err)
		return false
	}
	return true
}

// hasIDField checks whether the raw JSON contains an "id" key at the top level.
func hasIDField(raw []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, exists := obj["id"]
	return exists
}

// HasIDField reports whether a raw request carries an "id" key, i.e. whether
// it expects a response.
func HasIDField(raw []byte) bool {
	return hasIDField(raw)
}

// ServeStdio runs the server on the given reader and writer, typically
// stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) {
	transport := NewTransport(stdin, stdout)
	s.ServeTransport(ctx, transport)
}
