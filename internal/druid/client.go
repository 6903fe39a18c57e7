// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package druid implements the HTTP client for a Druid-compatible broker.
// It owns two things: the transport round trip (serialize, POST, read text)
// and the response decoder that classifies the raw text as either typed rows
// or a server error envelope. Everything else — retries, node failover,
// caching — is deliberately left to callers.
package druid

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"druidkit/cli/internal/cluster"
	"druidkit/cli/internal/druiderr"
	"druidkit/cli/internal/druidsql"
	"druidkit/cli/internal/query"
)

// defaultTimeout bounds a single query round trip when the caller does not
// override it. Long-running queries should raise it via WithTimeout.
const defaultTimeout = 60 * time.Second

// Client submits queries to a single broker endpoint set derived from the
// first configured node. It holds no mutable state after construction and is
// safe for concurrent use.
type Client struct {
	// httpClient is the underlying HTTP client with configured timeout
	httpClient *http.Client
	// nodes is the ordered broker address list the client was built from
	nodes []string
	// endpoints are the concrete URLs derived from nodes[0]
	endpoints cluster.Endpoints
	// username/password enable HTTP basic auth when both are non-empty
	username string
	password string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBasicAuth attaches HTTP basic auth credentials to every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// New creates a client for the given non-empty ordered node list. Only the
// first node is addressed; node selection is a collaborator concern.
func New(nodes []string, opts ...Option) (*Client, error) {
	if len(nodes) == 0 {
		return nil, druiderr.New(druiderr.InvalidConfig, "at least one broker node is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		nodes:      nodes,
		endpoints:  cluster.EndpointsFor(nodes[0]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the native query endpoint the client posts to.
func (c *Client) URL() string {
	return c.endpoints.Query
}

// Nodes returns the node list the client was constructed with.
func (c *Client) Nodes() []string {
	return c.nodes
}

// Execute serializes the query and returns the broker's raw response text.
// Serialization failure is parse_failed; send/receive failure is
// transport_failed. The text is not classified — see Query for typed decode.
func (c *Client) Execute(ctx context.Context, q query.Query) (string, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return "", druiderr.Wrap(druiderr.ParseFailed, "encode query", err)
	}
	return c.post(ctx, c.endpoints.Query, body)
}

// ExecuteSQL posts a SQL statement and returns the raw response text.
func (c *Client) ExecuteSQL(ctx context.Context, stmt druidsql.Statement) (string, error) {
	body, err := json.Marshal(stmt)
	if err != nil {
		return "", druiderr.Wrap(druiderr.ParseFailed, "encode statement", err)
	}
	return c.post(ctx, c.endpoints.SQL, body)
}

// post sends a JSON body and reads the full response text. The status code
// is intentionally ignored: the engine reports failures through its error
// envelope, which the decoder classifies.
func (c *Client) post(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", druiderr.Wrap(druiderr.TransportFailed, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", druiderr.Wrap(druiderr.TransportFailed, "send query", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", druiderr.Wrap(druiderr.TransportFailed, "read response", err)
	}
	return string(text), nil
}

// StatusResponse is the broker's version/module report.
type StatusResponse struct {
	Version string `json:"version"`
	Modules []struct {
		Name string `json:"name"`
	} `json:"modules"`
}

// Status fetches the broker's version and loaded modules.
func (c *Client) Status(ctx context.Context) (StatusResponse, error) {
	var status StatusResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Status, nil)
	if err != nil {
		return status, druiderr.Wrap(druiderr.TransportFailed, "create request", err)
	}
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return status, druiderr.Wrap(druiderr.TransportFailed, "fetch status", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return status, druiderr.Wrap(druiderr.ParseFailed, "decode status", err)
	}
	return status, nil
}

// Health probes the broker's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return cluster.Probe(ctx, c.endpoints)
}
