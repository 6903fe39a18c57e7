// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package druiderr defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. Every failure a query round trip can produce maps to
// exactly one kind, so callers can branch on the category without string matching.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package druiderr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// TransportFailed indicates the HTTP send/receive to the engine failed.
	TransportFailed Kind = "transport_failed"
	// ParseFailed indicates request serialization or response deserialization failed.
	ParseFailed Kind = "parse_failed"
	// ServerError indicates the engine answered with its own error envelope.
	ServerError Kind = "server_error"
	// MissingField indicates a compound value was finalized with a required part unset.
	MissingField Kind = "missing_field"
	// BuilderReused indicates a single-use builder was finalized more than once.
	BuilderReused Kind = "builder_reused"
	// InvalidConfig indicates client construction input was unusable (e.g. no nodes).
	InvalidConfig Kind = "invalid_config"
)

// E wraps an error with kind and human-friendly message.
//
// Field is set only for MissingField errors and names the absent part.
// Response is set only for ServerError and carries the engine's raw
// response body verbatim for diagnostics.
type E struct {
	Kind     Kind
	Message  string
	Field    string
	Response string
	Err      error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// NewMissingField reports a builder finalized without the named required part.
func NewMissingField(field string) *E {
	return &E{Kind: MissingField, Message: "required field not set: " + field, Field: field}
}

// NewServer reports an engine error envelope, preserving the raw response text.
func NewServer(raw string) *E {
	return &E{Kind: ServerError, Message: "server responded with an error", Response: raw}
}

// KindOf returns the kind of err, or the empty Kind when err carries none.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
