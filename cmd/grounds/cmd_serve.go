package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/groundsdev/grounds/internal/engine"
	"github.com/groundsdev/grounds/internal/jsonrpc"
	"github.com/groundsdev/grounds/internal/mcp"
	"github.com/groundsdev/grounds/internal/projectconfig"
	"github.com/groundsdev/grounds/internal/utils"
	"github.com/groundsdev/grounds/internal/webserver"
	"github.com/spf13/cobra"
)

// tcpFromConfig is the --tcp value used when the flag is given bare.
const tcpFromConfig = "config"

type serveOptions struct {
	tcpAddr        string
	tcpAllowRemote bool
	mcp            bool
	http           bool
	port           int
	resultsDir     string
}

func newServeCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis engine over JSON-RPC, MCP or HTTP",
		Long: `Serve the analysis engine for editors, agents and other tools.

By default, the server speaks JSON-RPC 2.0 over stdin/stdout using
newline-delimited JSON.

Use --tcp to serve JSON-RPC on a TCP address instead (default from
.grounds.yaml, 127.0.0.1:7411). TCP defaults to loopback; use
--tcp-allow-remote to bind to all interfaces.

Use --mcp to speak the Model Context Protocol on stdio, exposing every
analysis as a tool.

Use --http to start the local HTTP API (and result history) on
127.0.0.1:<port>.

JSON-RPC methods:
  report.evaluate      Score a report
  risk.simulate        Monte Carlo risk simulation
  sensitivity.analyze  Variable sensitivity sweep
  decay.model          Confidence decay over time
  decision.readiness   Decision record readiness
  rpc.methods          List methods`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.tcpAddr, "tcp", "", "Serve JSON-RPC on a TCP address (e.g., :9000)")
	cmd.Flags().Lookup("tcp").NoOptDefVal = tcpFromConfig
	cmd.Flags().BoolVar(&opts.tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")
	cmd.Flags().BoolVar(&opts.mcp, "mcp", false, "Speak the Model Context Protocol on stdio")
	cmd.Flags().BoolVar(&opts.http, "http", false, "Serve the HTTP API")
	cmd.Flags().IntVar(&opts.port, "port", 0, "HTTP port (default from .grounds.yaml, 3000)")
	cmd.Flags().StringVar(&opts.resultsDir, "results-dir", "", "Directory for HTTP result history (default: in memory)")
	cmd.MarkFlagsMutuallyExclusive("tcp", "mcp", "http")

	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, cfg *projectconfig.ProjectConfig, opts serveOptions) error {
	logger := slog.Default()
	svc := newService(cfg)

	switch {
	case opts.http:
		port := opts.port
		if port == 0 {
			port = cfg.Server.Port
		}
		dir := opts.resultsDir
		if dir == "" {
			dir = utils.ResolvePath(cfg.Server.ResultsDir, utils.ConfigDir(cfg.Path))
		}
		srv, err := webserver.New(webserver.Config{
			Port:           port,
			ResultsDir:     dir,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Service:        svc,
			Logger:         logger,
			Out:            cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)

	case opts.mcp:
		fmt.Fprintln(cmd.ErrOrStderr(), "MCP server running on stdio") //nolint:errcheck
		mcp.ServeStdio(ctx, svc, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		return nil

	case opts.tcpAddr != "":
		addr := opts.tcpAddr
		if addr == tcpFromConfig {
			addr = cfg.Server.TCPAddress
		}
		addr = resolveTCPAddr(addr, opts.tcpAllowRemote, logger)

		listener, err := jsonrpc.NewTCPListener(addr, newRPCServer(svc, logger))
		if err != nil {
			return fmt.Errorf("failed to start TCP server: %w", err)
		}
		defer listener.Close() //nolint:errcheck
		fmt.Fprintf(cmd.ErrOrStderr(), "JSON-RPC server listening on %s\n", listener.Addr()) //nolint:errcheck
		if err := listener.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil

	default:
		fmt.Fprintln(cmd.ErrOrStderr(), "JSON-RPC server running on stdio") //nolint:errcheck
		newRPCServer(svc, logger).ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		return nil
	}
}

func newRPCServer(svc *engine.Service, logger *slog.Logger) *jsonrpc.Server {
	registry := jsonrpc.NewMethodRegistry()
	jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(svc))
	return jsonrpc.NewServer(registry, logger)
}

// resolveTCPAddr ensures TCP addresses default to loopback unless --tcp-allow-remote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *slog.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// Likely just a port like "9000"; treat as ":9000".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("TCP server binding to all interfaces, no authentication is provided",
			"address", addr)
		return addr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		logger.Info("JSON-RPC server listening on TCP (local only)")
		return net.JoinHostPort("127.0.0.1", port)
	}

	return addr
}
