// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package nodeaddr

import "fmt"

// Scheme represents the transport scheme of a broker address
type Scheme string

const (
	SchemeHTTP    Scheme = "http"
	SchemeHTTPS   Scheme = "https"
	SchemeUnknown Scheme = "unknown"
)

// DefaultPort is the conventional broker router port
const DefaultPort = "8888"

// AddrInfo contains parsed information from a broker address string
type AddrInfo struct {
	Scheme   Scheme
	Host     string
	Port     string
	Original string
}

// String returns the normalized address string
func (a *AddrInfo) String() string {
	return fmt.Sprintf("%s://%s:%s", a.Scheme, a.Host, a.Port)
}

// ParseError represents an error that occurred during address parsing
type ParseError struct {
	Addr   string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid broker address: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid broker address: %s", e.Reason)
}

// NewParseError creates a new ParseError
func NewParseError(addr, reason, hint string) *ParseError {
	return &ParseError{
		Addr:   addr,
		Reason: reason,
		Hint:   hint,
	}
}
