// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package nodeaddr

import (
	"net/url"
	"regexp"
	"strings"
)

var portPattern = regexp.MustCompile(`^\d+$`)

// DetectScheme detects the transport scheme from an address string.
// Addresses with no scheme at all are reported as unknown; Parse fills in
// http for those.
func DetectScheme(addr string) Scheme {
	lower := strings.ToLower(addr)

	if strings.HasPrefix(lower, "https://") {
		return SchemeHTTPS
	}
	if strings.HasPrefix(lower, "http://") {
		return SchemeHTTP
	}

	return SchemeUnknown
}

// Parse parses a broker address and returns the normalized form.
// This is the main entry point for address parsing.
func Parse(addr string) (string, error) {
	info, err := ParseInfo(addr)
	if err != nil {
		return "", err
	}
	return info.String(), nil
}

// ParseInfo parses a broker address and returns detailed address info.
// Bare host[:port] addresses are accepted and default to http; a missing
// port defaults to 8888.
func ParseInfo(addr string) (*AddrInfo, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return nil, NewParseError(addr, "empty address", "provide a broker address like http://localhost:8888")
	}

	scheme := DetectScheme(trimmed)
	switch scheme {
	case SchemeHTTP, SchemeHTTPS:
	case SchemeUnknown:
		if strings.Contains(trimmed, "://") {
			return nil, NewParseError(addr, "unsupported scheme", "use http:// or https://")
		}
		scheme = SchemeHTTP
		trimmed = "http://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, NewParseError(addr, "malformed address", "format should be http://host:port")
	}

	info := &AddrInfo{
		Scheme:   scheme,
		Host:     parsed.Hostname(),
		Port:     parsed.Port(),
		Original: addr,
	}

	if strings.TrimSpace(info.Host) == "" {
		return nil, NewParseError(addr, "missing host", "format should be http://host:port")
	}
	if parsed.User != nil {
		return nil, NewParseError(addr, "credentials embedded in address", "pass credentials separately, not in the address")
	}
	if parsed.Path != "" && parsed.Path != "/" {
		return nil, NewParseError(addr, "address must not carry a path", "use just http://host:port; endpoint paths are derived")
	}

	if info.Port == "" {
		info.Port = DefaultPort
	}
	if !portPattern.MatchString(info.Port) {
		return nil, NewParseError(addr, "invalid port number: "+info.Port, "port must be numeric")
	}

	return info, nil
}

// Validate validates a broker address without normalizing it
func Validate(addr string) error {
	_, err := ParseInfo(addr)
	return err
}

// ParseList parses a comma-separated list of broker addresses, normalizing
// each. Order is preserved; the first address is the one a client dials.
func ParseList(addrs string) ([]string, error) {
	var nodes []string
	for _, raw := range strings.Split(addrs, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		normalized, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, normalized)
	}
	if len(nodes) == 0 {
		return nil, NewParseError(addrs, "empty address list", "provide at least one broker address")
	}
	return nodes, nil
}
