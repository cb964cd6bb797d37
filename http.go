package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/monumenten-mcp-server/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// mcpPath serves the streamable HTTP transport
	mcpPath = "/mcp"

	// DefaultMaxBodySize bounds request bodies on the HTTP transport
	DefaultMaxBodySize = 1 << 20
)

// HTTPConfig configures the HTTP middleware
type HTTPConfig struct {
	MaxBodySize int64
}

// HTTPMiddleware bounds request bodies and records per-request metrics
type HTTPMiddleware struct {
	next   http.Handler
	logger *slog.Logger
	config HTTPConfig
}

// NewHTTPMiddleware wraps next with body limits and request metrics
func NewHTTPMiddleware(next http.Handler, logger *slog.Logger, config HTTPConfig) *HTTPMiddleware {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	return &HTTPMiddleware{next: next, logger: logger, config: config}
}

func (m *HTTPMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	if r.ContentLength > m.config.MaxBodySize {
		http.Error(rec, "request body too large", http.StatusRequestEntityTooLarge)
	} else {
		r.Body = http.MaxBytesReader(rec, r.Body, m.config.MaxBodySize)
		m.next.ServeHTTP(rec, r)
	}

	duration := time.Since(start)
	metrics.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), strconv.Itoa(rec.status), duration.Seconds())
	m.logger.Debug("HTTP request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", duration)
}

// routeLabel keeps the path label cardinality bounded
func routeLabel(path string) string {
	switch path {
	case mcpPath, "/metrics", "/health":
		return path
	default:
		return "other"
	}
}

// statusRecorder captures the response status. It forwards Flush so
// streamed responses keep working.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// healthHandler reports liveness
func healthHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"name":    name,
			"version": ServerVersion,
		})
	}
}

// newHTTPHandler builds the mux for the HTTP transport: MCP, metrics and health.
func newHTTPHandler(server *mcp.Server, opts serveOptions, logger *slog.Logger) http.Handler {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: opts.stateless,
	})

	mux := http.NewServeMux()
	mux.Handle(mcpPath, mcpHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/health", healthHandler(opts.name))

	return NewHTTPMiddleware(mux, logger, HTTPConfig{MaxBodySize: DefaultMaxBodySize})
}

// runHTTP serves the streamable HTTP transport until ctx is canceled.
func runHTTP(ctx context.Context, server *mcp.Server, opts serveOptions, logger *slog.Logger) error {
	addr := net.JoinHostPort(opts.host, strconv.Itoa(opts.port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHTTPHandler(server, opts, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting Monumenten MCP Server",
		"name", opts.name,
		"version", ServerVersion,
		"transport", "streamable-http",
		"address", "http://"+addr+mcpPath,
		"stateless", opts.stateless)

	errCh := make(chan error, 1)
	go func() {
		defer recoverPanic(logger, "http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
