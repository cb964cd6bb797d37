package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
)

// dispatchFunc decodes raw JSON parameters and runs one tool.
type dispatchFunc func(ctx context.Context, raw []byte) (any, error)

// Dispatcher routes (tool name, parameter mapping) pairs to handlers outside
// an MCP session, e.g. for the call subcommand. Calls go through the same
// instrumentation as MCP tool calls.
type Dispatcher struct {
	tools map[string]dispatchFunc
}

// Dispatcher builds a Dispatcher over all tools in AllTools.
func (h *HandlerRegistry) Dispatcher() *Dispatcher {
	d := &Dispatcher{tools: make(map[string]dispatchFunc, len(AllTools))}
	for _, spec := range AllTools {
		if b, ok := h.bindingFor(spec); ok {
			d.tools[spec.Name] = b.dispatch
		}
	}
	return d
}

// Tools returns the sorted names of the dispatchable tools.
func (d *Dispatcher) Tools() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named tool with params. Unknown tools and parameters that
// do not match the tool's argument shape fail with a ValidationError.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, params map[string]any) (any, error) {
	fn, ok := d.tools[name]
	if !ok {
		return nil, apierrors.NewValidationError("tool", name, "unknown tool")
	}
	if params == nil {
		params = map[string]any{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, apierrors.NewValidationError("", "", fmt.Sprintf("parameters are not JSON encodable: %v", err))
	}
	return fn(ctx, raw)
}

// decodeStrict unmarshals a single JSON object into v, rejecting unknown fields.
func decodeStrict(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after parameters")
	}
	return nil
}
