// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cluster derives concrete endpoint URLs from configured broker node
// addresses. The query client addresses exactly one endpoint set; picking
// between nodes (failover, load balancing) is deliberately not done here or
// anywhere else in this codebase.
package cluster

import (
	"net/url"
	"strings"
)

// Wire paths of a Druid-compatible broker.
const (
	queryPath  = "/druid/v2"
	sqlPath    = "/druid/v2/sql"
	statusPath = "/status"
	healthPath = "/status/health"
)

// Endpoints is the set of broker URLs the CLI and client talk to.
type Endpoints struct {
	Query  string // POST native queries
	SQL    string // POST SQL statements
	Status string // GET version/module info
	Health string // GET liveness probe
}

// EndpointsFor derives the endpoint set from a single node address such as
// "http://localhost:8888". The address is used as-is apart from trailing
// slash trimming; validation belongs to nodeaddr.
func EndpointsFor(node string) Endpoints {
	base := strings.TrimRight(node, "/")
	return Endpoints{
		Query:  base + queryPath,
		SQL:    base + sqlPath,
		Status: base + statusPath,
		Health: base + healthPath,
	}
}

// Host extracts the host portion of a node address for display and error
// messages, falling back to the raw string when it does not parse.
func Host(node string) string {
	u, err := url.Parse(node)
	if err != nil || u.Host == "" {
		return node
	}
	return u.Host
}
