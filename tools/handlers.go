package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/glide-mcp-server/internal/glide"
	"github.com/olgasafonova/glide-mcp-server/metrics"
	"github.com/olgasafonova/glide-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their session method implementations.
type HandlerRegistry struct {
	session *glide.Session
	logger  *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(session *glide.Session, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		session: session,
		logger:  logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "SetAPIVersion":
		register(h, server, tool, spec, h.session.SetAPIVersionMCP)
	case "GetApp":
		register(h, server, tool, spec, h.session.GetAppMCP)
	case "GetTables":
		register(h, server, tool, spec, h.session.GetTablesMCP)
	case "GetTableRows":
		register(h, server, tool, spec, h.session.GetTableRowsMCP)
	case "AddTableRow":
		register(h, server, tool, spec, h.session.AddTableRowMCP)
	case "UpdateTableRow":
		register(h, server, tool, spec, h.session.UpdateTableRowMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the session method with panic recovery, metrics, tracing, and
// logging, and folds every success into a single text content block.
func register[Args any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (any, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, any, error) {
		defer h.recoverPanic(spec.Name)

		callID := uuid.NewString()

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(
			attribute.String("mcp.call.id", callID),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)
		if version := h.session.ActiveVersion(); version != "" {
			tracing.AddBackendAttributes(span, version, "")
		}

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			return nil, nil, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		res, err := textResult(result)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			return nil, nil, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, callID, args)
		return res, nil, nil
	})
}

// textResult wraps a session method result in the uniform response envelope:
// one text block, pretty-printed JSON for structured payloads and the bare
// string for plain confirmations.
func textResult(result any) (*mcp.CallToolResult, error) {
	text, ok := result.(string)
	if !ok {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding response: %w", err)
		}
		text = string(data)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details with argument fields extracted
// per tool. Results are opaque backend payloads and are not unpacked.
func (h *HandlerRegistry) logExecution(spec ToolSpec, callID string, args any) {
	attrs := []any{"tool", spec.Name, "call_id", callID}

	switch a := args.(type) {
	case glide.SetAPIVersionArgs:
		attrs = append(attrs, "version", a.Version)
	case glide.GetAppArgs:
		attrs = append(attrs, "app_id", a.AppID)
	case glide.GetTablesArgs:
		attrs = append(attrs, "app_id", a.AppID)
	case glide.GetTableRowsArgs:
		attrs = append(attrs, "app_id", a.AppID, "table_id", a.TableID, "limit", a.Limit, "offset", a.Offset)
	case glide.AddTableRowArgs:
		attrs = append(attrs, "app_id", a.AppID, "table_id", a.TableID, "columns", len(a.Values))
	case glide.UpdateTableRowArgs:
		attrs = append(attrs, "app_id", a.AppID, "table_id", a.TableID, "row_id", a.RowID, "columns", len(a.Values))
	}

	h.logger.Info("Tool executed", attrs...)
}
