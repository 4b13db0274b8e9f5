package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/jsonrpc"
)

// ServeStdio runs the MCP server on the given reader/writer (typically stdin/stdout).
// It reads newline-delimited JSON-RPC requests and writes responses until
// the reader is exhausted or ctx is done.
func ServeStdio(ctx context.Context, svc *engine.Service, r io.Reader, w io.Writer, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	srv := NewServer(svc, logger)
	transport := jsonrpc.NewTransport(r, w)

	for ctx.Err() == nil {
		req, rawJSON, err := transport.ReadRequest()
		if err != nil {
			if err == io.EOF {
				return
			}
			logger.Debug("mcp read error", "error", err)
			resp := &jsonrpc.Response{
				JSONRPC: jsonrpc.Version,
				Error:   jsonrpc.ErrParseError(err.Error()),
				ID:      json.RawMessage("null"),
			}
			if writeErr := transport.WriteResponse(resp); writeErr != nil {
				logger.Debug("mcp write error", "error", writeErr)
			}
			return
		}

		resp := srv.HandleRequest(ctx, req)
		if resp == nil || !jsonrpc.HasIDField(rawJSON) {
			continue
		}

		if writeErr := transport.WriteResponse(resp); writeErr != nil {
			logger.Debug("mcp write error", "error", writeErr)
			return
		}
	}
}
