// Package errors provides the structured error taxonomy for the poll API:
// validation failures, missing polls/options, and opaque internal faults.
// Broadcast send failures never surface here; they stay local to the hub.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an error for status mapping, logging, and metrics.
type ErrorType string

const (
	// TypeValidation is malformed or out-of-range input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound is a reference to a poll or option that does not exist (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeInternal is a persistence or other server-side fault, surfaced opaquely (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error carries a type, a caller-facing message, and optional field detail.
// Validation errors name the offending field; internal errors keep their
// cause for logs while clients only see a generic message.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Fields  map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to its response status code.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithField attaches one detail field (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// ValidationError reports invalid input (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// NotFoundError reports a missing resource (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// InternalError reports a server-side fault (HTTP 500). The cause is kept
// for logging but never serialized to the client.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// Response is the JSON error body sent to clients.
type Response struct {
	Error  string         `json:"error"`
	Type   ErrorType      `json:"type"`
	Fields map[string]any `json:"fields,omitempty"`
}

// ToResponse converts the error to its client-facing JSON shape.
func (e *Error) ToResponse() Response {
	return Response{
		Error:  e.Message,
		Type:   e.Type,
		Fields: e.Fields,
	}
}

// From normalizes any error into an *Error. A structured error passes
// through unchanged; anything else becomes an opaque internal error so
// storage faults are never leaked verbatim to callers.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	return InternalError("internal server error", err)
}
