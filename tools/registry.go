// Package tools provides a metadata-driven registry for MCP tool definitions.
// It reduces boilerplate in main.go by defining tools declaratively and
// using type-safe handlers to register them.
package tools

import (
	apierrors "github.com/olgasafonova/glide-mcp-server/internal/errors"
)

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a session method with a matching Args type.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "get_table_rows")
	Name string

	// Method is the session method name (e.g., "GetTableRows")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Category groups tools logically (session, read, write)
	Category string

	// ReadOnly indicates the tool doesn't modify app data or session state
	ReadOnly bool

	// Destructive indicates the tool can overwrite existing data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool calls the Glide API
	OpenWorld bool
}

// Lookup returns the spec for a tool name, or a method-not-found error for
// names outside the registry.
func Lookup(name string) (ToolSpec, error) {
	for _, spec := range AllTools {
		if spec.Name == name {
			return spec, nil
		}
	}
	return ToolSpec{}, apierrors.NewMethodNotFound(name)
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
