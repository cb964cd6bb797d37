// Package tools provides a metadata-driven registry for MCP tool definitions.
// Tools are defined declaratively and bound to type-safe handlers, which are
// registered with the MCP server and exposed through a Dispatcher.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a registry client method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "get_verblijfsobject_id")
	Name string

	// Method is the client method name (e.g., "GetVerblijfsobjectID")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (address, heritage)
	Category string

	// Registry is the upstream registry the tool queries ("bag" or "rce")
	Registry string

	// ReadOnly indicates the tool doesn't modify registry state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// Lookup returns the spec for a tool name.
func Lookup(name string) (ToolSpec, bool) {
	for _, spec := range AllTools {
		if spec.Name == name {
			return spec, true
		}
	}
	return ToolSpec{}, false
}

// ToolsByRegistry returns the tools that query the given registry.
func ToolsByRegistry(registry string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Registry == registry {
			out = append(out, spec)
		}
	}
	return out
}

// ToolsByCategory returns the tools in a category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
