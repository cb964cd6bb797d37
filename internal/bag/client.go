package bag

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olgasafonova/monumenten-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
	"github.com/olgasafonova/monumenten-mcp-server/internal/sparql"
)

const (
	// Registry labels BAG queries in errors, metrics and spans
	Registry = "bag"

	// streetModeHint is appended to NotFound errors for street + city searches
	streetModeHint = "Postal code + house number usually works better"
)

// Client resolves Dutch addresses to BAG verblijfsobject identifiers
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

// NewClient creates a new BAG client
func NewClient(opts ...ClientOption) *Client {
	return &Client{Client: base.NewClient(opts...)}
}

// ResolveVerblijfsobject looks up the verblijfsobject for a normalized address.
// It returns *errors.NotFoundError when nothing matches and
// *errors.AmbiguousAddressError when more than one verblijfsobject matches.
func (c *Client) ResolveVerblijfsobject(ctx context.Context, q AddressQuery) (*Match, error) {
	results, err := c.Query(ctx, base.QueryConfig{
		Registry: Registry,
		Action:   "resolve_address",
		Query:    BuildQuery(q),
	})
	if err != nil {
		return nil, err
	}

	bindings := results.Bindings()
	matches := matchesFrom(bindings)
	switch len(matches) {
	case 0:
		nf := apierrors.NewNotFoundError(Registry, q.Description())
		if q.Mode == ModeStreetCity {
			nf.Hint = streetModeHint
		}
		return nil, nf
	case 1:
		c.Logger.Debug("Resolved address",
			"query", q.Description(),
			"mode", q.Mode.String(),
			"verblijfsobject_id", matches[0].VerblijfsobjectID)
		return &matches[0], nil
	default:
		// Hitting the row limit means the registry may hold more matches
		// than were fetched.
		truncated := len(bindings) > MaxCandidates
		if len(matches) > MaxCandidates {
			matches = matches[:MaxCandidates]
		}
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = m.VerblijfsobjectID + " (" + m.Address.String() + ")"
		}
		return nil, &apierrors.AmbiguousAddressError{
			Address:    q.Description(),
			Candidates: candidates,
			Truncated:  truncated,
		}
	}
}

// matchesFrom collects one Match per distinct identifier, keeping result order.
// Rows without an identifier are skipped.
func matchesFrom(bindings []sparql.Binding) []Match {
	var matches []Match
	seen := make(map[string]bool)
	for _, b := range bindings {
		id := strings.TrimSpace(b.Value("identificatie"))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		number, _ := strconv.Atoi(b.Value("huisnummer"))
		matches = append(matches, Match{
			VerblijfsobjectID: id,
			Address: Address{
				PostalCode:  b.Value("postcode"),
				Street:      b.Value("straatnaam"),
				HouseNumber: number,
				HouseLetter: b.Value("huisletter"),
				HouseSuffix: b.Value("huisnummertoevoeging"),
				City:        b.Value("plaatsnaam"),
			},
		})
	}
	return matches
}
