package bag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
)

// queryRecorder keeps the last SPARQL query a fake endpoint received.
type queryRecorder struct {
	mu    sync.Mutex
	query string
}

func (r *queryRecorder) set(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = q
}

func (r *queryRecorder) get() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query
}

// fixtureServer serves a recorded SPARQL response and records each query.
func fixtureServer(t *testing.T, fixture string, rec *queryRecorder) *httptest.Server {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", fixture))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if rec != nil {
			rec.set(r.PostForm.Get("query"))
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(endpoint string) *Client {
	return NewClient(
		WithEndpoint(endpoint),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestNewClient(t *testing.T) {
	client := NewClient()
	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.Client == nil {
		t.Fatal("base client is nil")
	}
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(WithLogger(logger))

	if client.Logger != logger {
		t.Error("custom logger was not set")
	}
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{}
	client := NewClient(WithHTTPClient(hc))

	if client.HTTPClient != hc {
		t.Error("custom HTTP client was not set")
	}
}

func TestResolveVerblijfsobject_UniqueMatch(t *testing.T) {
	var rec queryRecorder
	server := fixtureServer(t, "coolsingel_30.json", &rec)
	client := newTestClient(server.URL)

	q := AddressQuery{Mode: ModePostalCode, PostalCode: "3011AD", HouseNumber: 30}
	match, err := client.ResolveVerblijfsobject(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if match.VerblijfsobjectID != "0599010000165822" {
		t.Errorf("VerblijfsobjectID = %q, want 0599010000165822", match.VerblijfsobjectID)
	}
	want := Address{PostalCode: "3011AD", Street: "Coolsingel", HouseNumber: 30, City: "Rotterdam"}
	if match.Address != want {
		t.Errorf("Address = %+v, want %+v", match.Address, want)
	}
	if got := rec.get(); got != BuildQuery(q) {
		t.Errorf("server received unexpected query:\n%s", got)
	}
}

func TestResolveVerblijfsobject_Ambiguous(t *testing.T) {
	server := fixtureServer(t, "ambiguous.json", nil)
	client := newTestClient(server.URL)

	q := AddressQuery{Mode: ModePostalCode, PostalCode: "1012JS", HouseNumber: 1}
	_, err := client.ResolveVerblijfsobject(context.Background(), q)
	if err == nil {
		t.Fatal("expected error")
	}

	ambiguous, ok := err.(*apierrors.AmbiguousAddressError)
	if !ok {
		t.Fatalf("expected *AmbiguousAddressError, got %T: %v", err, err)
	}
	if ambiguous.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (duplicate rows collapse)", ambiguous.Count())
	}
	if !strings.Contains(ambiguous.Candidates[0], "0363010000741231 (Dam 1-H, 1012JS Amsterdam)") {
		t.Errorf("unexpected candidate: %q", ambiguous.Candidates[0])
	}
	if !strings.HasPrefix(err.Error(), "AmbiguousAddress:") {
		t.Errorf("error should start with kind: %q", err.Error())
	}
	if ambiguous.Truncated {
		t.Error("two matches should not be reported as truncated")
	}
}

var limitRegex = regexp.MustCompile(`LIMIT (\d+)`)

// unitsServer holds units verblijfsobjecten at one postal code and house
// number, and returns no more rows than the query's LIMIT allows.
func unitsServer(t *testing.T, units int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := units
		if m := limitRegex.FindStringSubmatch(r.FormValue("query")); m != nil {
			limit, _ := strconv.Atoi(m[1])
			rows = min(rows, limit)
		}
		bindings := make([]string, rows)
		for i := range bindings {
			bindings[i] = fmt.Sprintf(`{"identificatie": {"type": "literal", "value": "05990100001%05d"},
			  "huisnummertoevoeging": {"type": "literal", "value": "%d"}}`, i, i+1)
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = fmt.Fprintf(w, `{"head": {"vars": ["identificatie", "huisnummertoevoeging"]}, "results": {"bindings": [%s]}}`,
			strings.Join(bindings, ","))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveVerblijfsobject_ManyUnits(t *testing.T) {
	tests := []struct {
		name          string
		units         int
		wantTruncated bool
		wantCount     string
	}{
		{"exactly the cap", MaxCandidates, false, "25 verblijfsobjecten match"},
		{"one over the cap", MaxCandidates + 1, true, "at least 25 verblijfsobjecten match"},
		{"far over the cap", 40, true, "at least 25 verblijfsobjecten match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(unitsServer(t, tt.units).URL)

			q := AddressQuery{Mode: ModePostalCode, PostalCode: "3011AD", HouseNumber: 30}
			_, err := client.ResolveVerblijfsobject(context.Background(), q)

			ambiguous, ok := err.(*apierrors.AmbiguousAddressError)
			if !ok {
				t.Fatalf("expected *AmbiguousAddressError, got %T: %v", err, err)
			}
			if ambiguous.Count() != MaxCandidates {
				t.Errorf("Count() = %d, want %d", ambiguous.Count(), MaxCandidates)
			}
			if ambiguous.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", ambiguous.Truncated, tt.wantTruncated)
			}
			if !strings.Contains(err.Error(), tt.wantCount) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantCount)
			}
			if !tt.wantTruncated && strings.Contains(err.Error(), "at least") {
				t.Errorf("complete result reported as lower bound: %q", err.Error())
			}
		})
	}
}

func TestResolveVerblijfsobject_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		q        AddressQuery
		wantHint bool
	}{
		{
			name: "postal code mode",
			q:    AddressQuery{Mode: ModePostalCode, PostalCode: "9999ZZ", HouseNumber: 1},
		},
		{
			name:     "street mode suggests postal code",
			q:        AddressQuery{Mode: ModeStreetCity, Street: "Nergensstraat", City: "Nergenshuizen", HouseNumber: 1},
			wantHint: true,
		},
	}

	server := fixtureServer(t, "empty.json", nil)
	client := newTestClient(server.URL)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.ResolveVerblijfsobject(context.Background(), tt.q)
			if !apierrors.IsNotFound(err) {
				t.Fatalf("expected NotFoundError, got %T: %v", err, err)
			}
			hasHint := strings.Contains(err.Error(), "Postal code + house number usually works better")
			if hasHint != tt.wantHint {
				t.Errorf("hint present = %v, want %v: %q", hasHint, tt.wantHint, err.Error())
			}
		})
	}
}

func TestResolveVerblijfsobject_UpstreamError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ResolveVerblijfsobject(context.Background(), AddressQuery{Mode: ModePostalCode, PostalCode: "3011AD", HouseNumber: 30})
	if !apierrors.IsUpstream(err) {
		t.Fatalf("expected UpstreamError, got %T: %v", err, err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestGetVerblijfsobjectIDMCP(t *testing.T) {
	var rec queryRecorder
	server := fixtureServer(t, "coolsingel_30.json", &rec)
	client := newTestClient(server.URL)

	result, err := client.GetVerblijfsobjectIDMCP(context.Background(), GetVerblijfsobjectIDArgs{
		PostalCode:  "3011 ad",
		HouseNumber: "30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.VerblijfsobjectID != "0599010000165822" {
		t.Errorf("VerblijfsobjectID = %q", result.VerblijfsobjectID)
	}
	if result.Address.City != "Rotterdam" {
		t.Errorf("City = %q, want Rotterdam", result.Address.City)
	}
	if got := rec.get(); !strings.Contains(got, `imx:postcode "3011AD"`) {
		t.Errorf("postal code not normalized in query:\n%s", got)
	}
}

func TestGetVerblijfsobjectIDMCP_InvalidInputMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetVerblijfsobjectIDMCP(context.Background(), GetVerblijfsobjectIDArgs{
		PostalCode:  "3011AD",
		Street:      "Coolsingel",
		City:        "Rotterdam",
		HouseNumber: "30",
	})
	if !apierrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0", calls.Load())
	}
}
