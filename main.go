// Monumenten MCP Server - A Model Context Protocol server for Dutch monument lookups
// Resolves addresses to BAG verblijfsobject IDs and reports their heritage status
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/monumenten-mcp-server/internal/bag"
	"github.com/olgasafonova/monumenten-mcp-server/internal/config"
	"github.com/olgasafonova/monumenten-mcp-server/internal/rce"
	"github.com/olgasafonova/monumenten-mcp-server/tools"
	"github.com/olgasafonova/monumenten-mcp-server/tracing"
	"github.com/spf13/cobra"
)

// recoverPanic logs a panic instead of crashing the process
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName         = "monumenten-mcp-server"
	ServerVersion      = "1.0.0"
	DefaultDisplayName = "Monumenten MCP"

	shutdownTimeout = 5 * time.Second
)

const serverInstructions = `Monumenten MCP Server looks up the heritage status of Dutch buildings.

Available tools:
- get_verblijfsobject_id: Resolve an address (postal code + house number, or street + house number + city) to a BAG verblijfsobject ID
- get_monumental_status: Get rijksmonument, protected cityscape and municipal monument status for a verblijfsobject ID

Typical flow: resolve the address first, then check its status. Always mention RCE (Rijksdienst voor het Cultureel Erfgoed) as the source of the rijksmonument status.

Configure via environment variables:
- MONUMENTEN_SPARQL_ENDPOINT: SPARQL endpoint (default Kadaster knowledge graph)
- MONUMENTEN_TIMEOUT: Registry request timeout (e.g., 30s)
- MCP_LOG_LEVEL: debug, info, warn or error`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// serveOptions holds the transport flags of the root command
type serveOptions struct {
	name      string
	http      bool
	host      string
	port      int
	stateless bool
}

func newRootCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:          ServerName,
		Short:        "MCP server for Dutch address and monument lookups",
		Long:         `Serves the get_verblijfsobject_id and get_monumental_status tools over MCP. Uses stdio by default; pass --http for streamable HTTP.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", DefaultDisplayName, "Server name reported to MCP clients")
	flags.BoolVar(&opts.http, "http", false, "Serve streamable HTTP instead of stdio")
	flags.StringVar(&opts.host, "host", "127.0.0.1", "HTTP listen host")
	flags.IntVar(&opts.port, "port", 8000, "HTTP listen port")
	flags.BoolVar(&opts.stateless, "stateless", false, "Serve streamable HTTP without session state")

	cmd.AddCommand(newCallCmd(), newVersionCmd())
	return cmd
}

// app bundles the dependencies shared by all commands
type app struct {
	logger   *slog.Logger
	registry *tools.HandlerRegistry
	shutdown func(context.Context) error
}

// newApp loads configuration, sets up logging and tracing, and creates the
// registry clients. Logs go to logOut, as JSON when jsonLogs is set.
func newApp(ctx context.Context, logOut io.Writer, jsonLogs bool) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(logOut, cfg.LogLevel, jsonLogs)

	tracingConfig := tracing.DefaultConfig()
	tracingConfig.ServiceVersion = ServerVersion
	shutdown, err := tracing.Setup(ctx, tracingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	bagClient := bag.NewClient(cfg.ClientOptions(logger)...)
	rceClient := rce.NewClient(cfg.ClientOptions(logger)...)

	logger.Debug("Configuration loaded",
		"endpoint", cfg.Endpoint,
		"timeout", cfg.Timeout,
		"tracing", tracingConfig.Enabled)

	return &app{
		logger:   logger,
		registry: tools.NewHandlerRegistry(bagClient, rceClient, logger),
		shutdown: shutdown,
	}, nil
}

// close flushes pending spans
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("Tracing shutdown failed", "error", err)
	}
}

// newLogger creates the process logger. Stdio mode must keep stdout free for
// the protocol stream, so callers pass stderr there.
func newLogger(w io.Writer, level slog.Level, jsonLogs bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newServer creates the MCP server with all tools registered
func newServer(name string, a *app) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       a.logger,
		Instructions: serverInstructions,
	})

	if err := a.registry.RegisterAll(server); err != nil {
		return nil, err
	}
	return server, nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	// HTTP mode logs JSON to stdout; stdio mode keeps stdout for the protocol
	logOut, jsonLogs := io.Writer(os.Stderr), false
	if opts.http {
		logOut, jsonLogs = os.Stdout, true
	}

	a, err := newApp(ctx, logOut, jsonLogs)
	if err != nil {
		return err
	}
	defer a.close()

	server, err := newServer(opts.name, a)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if opts.http {
		return runHTTP(ctx, server, opts, a.logger)
	}

	a.logger.Info("Starting Monumenten MCP Server",
		"name", opts.name,
		"version", ServerVersion,
		"transport", "stdio")

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
