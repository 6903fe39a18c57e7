// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package druid

import (
	"context"

	segjson "github.com/segmentio/encoding/json"

	"druidkit/cli/internal/druiderr"
	"druidkit/cli/internal/druidsql"
	"druidkit/cli/internal/query"
)

// QueryResult is the decoded success response: an ordered sequence of
// caller-defined rows. Values are constructed only by the decoder; callers
// read them through Rows.
type QueryResult[T any] struct {
	rows []T
}

// Rows returns the decoded rows in response order.
func (r QueryResult[T]) Rows() []T { return r.rows }

// Len returns the number of decoded rows.
func (r QueryResult[T]) Len() int { return len(r.rows) }

// Query submits a native query and decodes the response rows into T.
// T must round-trip through JSON; the decoder places no other constraint on
// it. Every call yields exactly one of: typed rows, server_error,
// parse_failed, transport_failed.
func Query[T any](ctx context.Context, c *Client, q query.Query) (QueryResult[T], error) {
	raw, err := c.Execute(ctx, q)
	if err != nil {
		return QueryResult[T]{}, err
	}
	return decode[T](raw)
}

// SQL submits a SQL statement and decodes the response rows into T. The
// statement should use the object result format so rows decode by field name.
func SQL[T any](ctx context.Context, c *Client, stmt druidsql.Statement) (QueryResult[T], error) {
	raw, err := c.ExecuteSQL(ctx, stmt)
	if err != nil {
		return QueryResult[T]{}, err
	}
	return decode[T](raw)
}

// decode classifies raw response text and deserializes it.
//
// The engine signals failure with a JSON object carrying a top-level "error"
// key; success is a JSON array of rows. Malformed text and row-shape
// mismatches are both parse_failed. The error envelope is preserved verbatim
// and never decomposed further.
func decode[T any](raw string) (QueryResult[T], error) {
	var probe any
	if err := segjson.Unmarshal([]byte(raw), &probe); err != nil {
		return QueryResult[T]{}, druiderr.Wrap(druiderr.ParseFailed, "parse response", err)
	}

	if envelope, ok := probe.(map[string]any); ok {
		if _, ok := envelope["error"]; ok {
			return QueryResult[T]{}, druiderr.NewServer(raw)
		}
	}

	var rows []T
	if err := segjson.Unmarshal([]byte(raw), &rows); err != nil {
		return QueryResult[T]{}, druiderr.Wrap(druiderr.ParseFailed, "decode rows", err)
	}
	return QueryResult[T]{rows: rows}, nil
}
