// Package errors provides the normalized error taxonomy surfaced by glide
// MCP tools. Every failure a tool reports is one of four kinds, carrying the
// matching JSON-RPC 2.0 error code.
package errors

import (
	"errors"
	"fmt"
)

// JSON-RPC 2.0 error codes used for tool failures.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
)

// Error is a normalized tool failure. Message carries the backend-provided
// text verbatim when one exists; Code identifies the failure kind.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return labelFor(e.Code) + ": " + e.Message
}

// NewInvalidParams reports caller-supplied arguments that failed validation.
func NewInvalidParams(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidRequest reports an operation that is invalid in the current
// session state.
func NewInvalidRequest(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// NewMethodNotFound reports a tool name outside the known set.
func NewMethodNotFound(name string) *Error {
	return &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown tool %q", name)}
}

// NewInternal reports a backend or transport failure during a network call.
func NewInternal(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsInvalidParams returns true if the error chain contains an InvalidParams error.
func IsInvalidParams(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeInvalidParams
}

// IsInvalidRequest returns true if the error chain contains an InvalidRequest error.
func IsInvalidRequest(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeInvalidRequest
}

// IsMethodNotFound returns true if the error chain contains a MethodNotFound error.
func IsMethodNotFound(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeMethodNotFound
}

// IsInternal returns true if the error chain contains an InternalError.
func IsInternal(err error) bool {
	e, ok := As(err)
	return ok && e.Code == CodeInternal
}

// Label returns a snake_case identifier for err's failure kind, suitable for
// metric labels. Errors outside the taxonomy report as "unhandled".
func Label(err error) string {
	e, ok := As(err)
	if !ok {
		return "unhandled"
	}
	switch e.Code {
	case CodeInvalidRequest:
		return "invalid_request"
	case CodeMethodNotFound:
		return "method_not_found"
	case CodeInvalidParams:
		return "invalid_params"
	case CodeInternal:
		return "internal_error"
	default:
		return "unhandled"
	}
}

// labelFor renders the human-readable prefix used in error messages.
func labelFor(code int) string {
	switch code {
	case CodeInvalidRequest:
		return "invalid request"
	case CodeMethodNotFound:
		return "method not found"
	case CodeInvalidParams:
		return "invalid params"
	case CodeInternal:
		return "internal error"
	default:
		return fmt.Sprintf("error %d", code)
	}
}
