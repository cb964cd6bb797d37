package rce

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olgasafonova/monumenten-mcp-server/internal/base"
	"github.com/olgasafonova/monumenten-mcp-server/internal/sparql"
)

// Registry labels RCE queries in errors, metrics and spans
const Registry = "rce"

// Client checks the heritage status of BAG verblijfsobjecten
type Client struct {
	*base.Client
}

// ClientOption configures the Client (re-export base.ClientOption for compatibility)
type ClientOption = base.ClientOption

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return base.WithHTTPClient(c)
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return base.WithLogger(l)
}

// WithEndpoint overrides the SPARQL endpoint
func WithEndpoint(endpoint string) ClientOption {
	return base.WithEndpoint(endpoint)
}

// NewClient creates a new RCE client
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...)}
}

// GetMonumentStatus returns the monument flags for a verblijfsobject ID.
// The ID is validated before any request is made. An ID the registries
// know nothing about yields a status with all flags false.
func (c *Client) GetMonumentStatus(ctx context.Context, id string) (*MonumentStatus, error) {
	id = NormalizeVerblijfsobjectID(id)
	if err := ValidateVerblijfsobjectID(id); err != nil {
		return nil, err
	}

	results, err := c.Query(ctx, base.QueryConfig{
		Registry: Registry,
		Action:   "monument_status",
		Query:    BuildStatusQuery(id),
	})
	if err != nil {
		return nil, err
	}

	status := statusFrom(id, results.Bindings())
	c.Logger.Debug("Monument status retrieved",
		"verblijfsobject_id", id,
		"rijksmonument", status.IsRijksmonument,
		"protected_cityscape", status.InProtectedCityscape,
		"municipal_monument", status.IsMunicipalMonument)
	return status, nil
}

// statusFrom folds all result rows into one status. A flag is set when any
// row reports it; the first non-empty detail wins.
func statusFrom(id string, bindings []sparql.Binding) *MonumentStatus {
	status := &MonumentStatus{VerblijfsobjectID: id}
	for _, b := range bindings {
		if nr := strings.TrimSpace(b.Value("rijksmonumentnummer")); nr != "" {
			status.IsRijksmonument = true
			if status.RijksmonumentNummer == "" {
				status.RijksmonumentNummer = nr
			}
		}
		if name := strings.TrimSpace(b.Value("beschermdGezichtNaam")); name != "" {
			status.InProtectedCityscape = true
			if status.ProtectedCityscapeName == "" {
				status.ProtectedCityscapeName = name
			}
		}
		if b.Bool("gemeentelijkMonument") {
			status.IsMunicipalMonument = true
		}
	}
	return status
}
