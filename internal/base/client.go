// Package base provides the shared SPARQL HTTP client for the BAG and RCE lookups.
package base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
	"github.com/olgasafonova/monumenten-mcp-server/internal/sparql"
	"github.com/olgasafonova/monumenten-mcp-server/metrics"
	"github.com/olgasafonova/monumenten-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultEndpoint is the Kadaster knowledge graph SPARQL endpoint
	DefaultEndpoint = "https://data.kkg.kadaster.nl/service/sparql"

	// DefaultTimeout for registry requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the server to the registries
	DefaultUserAgent = "monumenten-mcp-server/1.0 (github.com/olgasafonova/monumenten-mcp-server)"

	// maxErrorBody bounds how much of an error response is logged
	maxErrorBody = 200
)

// Client posts SPARQL queries to a registry endpoint. It makes exactly one
// HTTP request per query; there is no retry, cache or rate limiting.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	Endpoint   string
	UserAgent  string

	timeout time.Duration
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		if c != nil {
			client.HTTPClient = c
		}
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithEndpoint overrides the SPARQL endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(client *Client) {
		client.Endpoint = endpoint
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		if ua != "" {
			client.UserAgent = ua
		}
	}
}

// WithTimeout sets the request timeout. A client passed to WithHTTPClient is
// copied rather than modified.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		Logger:    slog.Default(),
		Endpoint:  DefaultEndpoint,
		UserAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.HTTPClient == nil:
		timeout := DefaultTimeout
		if c.timeout > 0 {
			timeout = c.timeout
		}
		c.HTTPClient = newHTTPClient(timeout)
	case c.timeout > 0 && c.HTTPClient.Timeout != c.timeout:
		hc := *c.HTTPClient
		hc.Timeout = c.timeout
		c.HTTPClient = &hc
	}

	return c
}

// QueryConfig describes a single SPARQL request
type QueryConfig struct {
	Registry string // "bag" or "rce", used for metrics and tracing
	Action   string // short operation name, e.g. "resolve_address"
	Query    string
}

// Query executes a SPARQL SELECT query and decodes the JSON results.
// Transport failures, non-2xx responses and undecodable bodies are reported
// as *errors.UpstreamError.
func (c *Client) Query(ctx context.Context, cfg QueryConfig) (*sparql.Results, error) {
	ctx, span := tracing.StartRegistrySpan(ctx, cfg.Registry, cfg.Action)
	defer span.End()

	start := time.Now()
	results, status, err := c.do(ctx, cfg.Query)
	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errorCode := "transport"
		if status != 0 {
			errorCode = strconv.Itoa(status)
		}
		metrics.RecordAPICall(cfg.Registry, cfg.Action, duration, false, errorCode)
		c.Logger.Warn("Registry query failed",
			"registry", cfg.Registry,
			"action", cfg.Action,
			"status", status,
			"error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("sparql.bindings", len(results.Bindings())))
	span.SetStatus(codes.Ok, "")
	metrics.RecordAPICall(cfg.Registry, cfg.Action, duration, true, "")
	c.Logger.Debug("Registry query completed",
		"registry", cfg.Registry,
		"action", cfg.Action,
		"bindings", len(results.Bindings()),
		"duration_seconds", duration)
	return results, nil
}

func (c *Client) do(ctx context.Context, query string) (*sparql.Results, int, error) {
	form := url.Values{}
	form.Set("query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", sparql.ContentType)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, &apierrors.UpstreamError{Endpoint: c.Endpoint, Err: err}
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, resp.StatusCode, &apierrors.UpstreamError{
			Endpoint: c.Endpoint,
			Err:      fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Debug("Registry error body", "status", resp.StatusCode, "body", truncate(string(body), maxErrorBody))
		return nil, resp.StatusCode, &apierrors.UpstreamError{Endpoint: c.Endpoint, StatusCode: resp.StatusCode}
	}

	results, err := sparql.Decode(body)
	if err != nil {
		return nil, resp.StatusCode, &apierrors.UpstreamError{Endpoint: c.Endpoint, Err: err}
	}
	return results, resp.StatusCode, nil
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
