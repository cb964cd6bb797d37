package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/monumenten-mcp-server/internal/bag"
	apierrors "github.com/olgasafonova/monumenten-mcp-server/internal/errors"
	"github.com/olgasafonova/monumenten-mcp-server/internal/rce"
	"github.com/olgasafonova/monumenten-mcp-server/metrics"
	"github.com/olgasafonova/monumenten-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	bagClient *bag.Client
	rceClient *rce.Client
	logger    *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(bagClient *bag.Client, rceClient *rce.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		bagClient: bagClient,
		rceClient: rceClient,
		logger:    logger,
	}
}

// binding connects one ToolSpec to its typed handler, both for the MCP
// server and for the Dispatcher.
type binding struct {
	register func(server *mcp.Server, tool *mcp.Tool)
	dispatch dispatchFunc
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) error {
	for _, spec := range AllTools {
		b, ok := h.bindingFor(spec)
		if !ok {
			h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
			continue
		}
		tool, err := h.buildTool(spec)
		if err != nil {
			return fmt.Errorf("failed to build tool %s: %w", spec.Name, err)
		}
		b.register(server, tool)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
	return nil
}

// bindingFor dispatches to the correct typed binding.
func (h *HandlerRegistry) bindingFor(spec ToolSpec) (binding, bool) {
	switch spec.Method {
	case "GetVerblijfsobjectID":
		return bind(h, spec, h.bagClient.GetVerblijfsobjectIDMCP), true
	case "GetMonumentalStatus":
		return bind(h, spec, h.rceClient.GetMonumentalStatusMCP), true
	default:
		return binding{}, false
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) (*mcp.Tool, error) {
	annotations := &mcp.ToolAnnotations{
		Title:           spec.Title,
		ReadOnlyHint:    spec.ReadOnly,
		DestructiveHint: ptr(spec.Destructive),
		IdempotentHint:  spec.Idempotent,
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	tool := &mcp.Tool{
		Name:        spec.Name,
		Title:       spec.Title,
		Description: spec.Description,
		Annotations: annotations,
	}

	// house_number arrives as integer or string; the inferred schema would only allow strings
	if spec.Method == "GetVerblijfsobjectID" {
		schema, err := bag.InputSchema()
		if err != nil {
			return nil, err
		}
		tool.InputSchema = schema
	}
	return tool, nil
}

// bind creates the MCP registration and the dispatch function for a client method.
func bind[Args, Result any](
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) binding {
	return binding{
		register: func(server *mcp.Server, tool *mcp.Tool) {
			mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
				result, err := invoke(ctx, h, spec, method, args)
				return nil, result, err
			})
		},
		dispatch: func(ctx context.Context, raw []byte) (any, error) {
			var args Args
			if err := decodeStrict(raw, &args); err != nil {
				return nil, apierrors.NewValidationError("", "", fmt.Sprintf("invalid parameters for %s: %v", spec.Name, err))
			}
			return invoke(ctx, h, spec, method, args)
		},
	}
}

// invoke wraps the client method with panic recovery, metrics, tracing, and logging.
func invoke[Args, Result any](
	ctx context.Context,
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
	args Args,
) (result Result, err error) {
	defer h.recoverPanic(spec.Name, &err)

	// Start trace span
	ctx, span := tracing.StartToolSpan(ctx, spec.Name, spec.Category, spec.Registry)
	defer span.End()
	span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

	// Track in-flight requests
	metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
	defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

	start := time.Now()
	result, err = method(ctx, args)
	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

	if err != nil {
		kind := apierrors.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("mcp.tool.error_kind", string(kind)))
		metrics.RecordRequest(spec.Name, duration, false)
		metrics.RecordToolError(spec.Name, string(kind))
		h.logger.Info("Tool failed", "tool", spec.Name, "kind", kind, "error", err)
		var zero Result
		return zero, fmt.Errorf("%s failed: %w", spec.Name, err)
	}

	span.SetStatus(codes.Ok, "")
	metrics.RecordRequest(spec.Name, duration, true)
	h.logExecution(spec, args, result)
	return result, nil
}

// recoverPanic recovers from panics in tool handlers and turns them into errors.
func (h *HandlerRegistry) recoverPanic(toolName string, err *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if err != nil {
			*err = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "registry", spec.Registry}

	switch a := args.(type) {
	case bag.GetVerblijfsobjectIDArgs:
		attrs = append(attrs, "house_number", string(a.HouseNumber))
		if a.PostalCode != "" {
			attrs = append(attrs, "postal_code", a.PostalCode)
		} else {
			attrs = append(attrs, "street", a.Street, "city", a.City)
		}
	case rce.GetMonumentalStatusArgs:
		attrs = append(attrs, "bag_verblijfsobject_id", a.BagVerblijfsobjectID)
	}

	switch r := result.(type) {
	case bag.GetVerblijfsobjectIDResult:
		attrs = append(attrs, "verblijfsobject_id", r.VerblijfsobjectID)
	case rce.GetMonumentalStatusResult:
		attrs = append(attrs,
			"rijksmonument", r.IsRijksmonument,
			"protected_cityscape", r.InProtectedCityscape,
			"municipal_monument", r.IsMunicipalMonument)
	}

	h.logger.Info("Tool executed", attrs...)
}
