package tools

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// connect registers all tools on a fresh server and returns a connected client session.
func connect(t *testing.T, endpoint string) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "monumenten-test", Version: "v0.0.1"}, nil)
	if err := newTestRegistry(endpoint).RegisterAll(server); err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func textOf(res *mcp.CallToolResult) string {
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, "http://127.0.0.1:0")

	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(res.Tools) != len(AllTools) {
		t.Fatalf("got %d tools, want %d", len(res.Tools), len(AllTools))
	}
	for _, tool := range res.Tools {
		if tool.Annotations == nil || !tool.Annotations.ReadOnlyHint {
			t.Errorf("tool %s should be annotated read-only", tool.Name)
		}
	}
}

func TestServer_ResolveThenCheckStatus(t *testing.T) {
	var calls atomic.Int32
	server := fakeRegistry(t, &calls)
	cs := connect(t, server.URL)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_verblijfsobject_id",
		Arguments: map[string]any{"postal_code": "3011AD", "house_number": 30},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textOf(res))
	}
	if !strings.Contains(textOf(res), "0599010000165822") {
		t.Fatalf("identifier missing from result: %s", textOf(res))
	}

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_monumental_status",
		Arguments: map[string]any{"bag_verblijfsobject_id": "0599010000165822"},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", textOf(res))
	}
	if !strings.Contains(textOf(res), `"is_rijksmonument":true`) {
		t.Errorf("unexpected status result: %s", textOf(res))
	}
	if calls.Load() != 2 {
		t.Errorf("registry calls = %d, want 2", calls.Load())
	}
}

func TestServer_ToolErrors(t *testing.T) {
	var calls atomic.Int32
	server := fakeRegistry(t, &calls)
	cs := connect(t, server.URL)

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantText string
	}{
		{
			name: "both addressing modes",
			tool: "get_verblijfsobject_id",
			args: map[string]any{
				"postal_code":  "3011AD",
				"street":       "Coolsingel",
				"city":         "Rotterdam",
				"house_number": "30",
			},
			wantText: "InvalidInput",
		},
		{
			name:     "malformed identifier",
			tool:     "get_monumental_status",
			args:     map[string]any{"bag_verblijfsobject_id": "not-an-id"},
			wantText: "InvalidInput",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: tt.tool, Arguments: tt.args})
			if err != nil {
				t.Fatalf("CallTool() error = %v", err)
			}
			if !res.IsError {
				t.Fatalf("expected tool error, got %s", textOf(res))
			}
			if !strings.Contains(textOf(res), tt.wantText) {
				t.Errorf("error text %q does not contain %q", textOf(res), tt.wantText)
			}
		})
	}

	if calls.Load() != 0 {
		t.Errorf("registry calls = %d, want 0", calls.Load())
	}
}
