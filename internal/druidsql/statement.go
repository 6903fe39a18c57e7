// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package druidsql models statements for the engine's SQL endpoint. It is the
// SQL-dialect sibling of internal/query: pure wire types, no execution — the
// druid client posts the statement and decodes the response through the same
// decoder contract as native queries.
package druidsql

import "druidkit/cli/internal/query"

// Result formats accepted by the SQL endpoint.
const (
	ResultFormatObject = "object"
	ResultFormatArray  = "array"
	ResultFormatCSV    = "csv"
)

// Parameter is a typed positional parameter referenced by "?" placeholders
// in the statement text.
type Parameter struct {
	Type  string `json:"type"` // SQL type name, e.g. "VARCHAR", "BIGINT"
	Value any    `json:"value"`
}

// Statement is the JSON body posted to the SQL endpoint.
type Statement struct {
	Query        string        `json:"query"`
	ResultFormat string        `json:"resultFormat,omitempty"`
	Header       bool          `json:"header,omitempty"`
	Parameters   []Parameter   `json:"parameters,omitempty"`
	Context      query.Context `json:"context,omitempty"`
}

// New returns a statement that yields one JSON object per row, the format
// the table renderer and the typed decoder both consume.
func New(sql string, params ...Parameter) Statement {
	return Statement{Query: sql, ResultFormat: ResultFormatObject, Parameters: params}
}

// Varchar returns a VARCHAR parameter.
func Varchar(v string) Parameter { return Parameter{Type: "VARCHAR", Value: v} }

// Bigint returns a BIGINT parameter.
func Bigint(v int64) Parameter { return Parameter{Type: "BIGINT", Value: v} }

// Double returns a DOUBLE parameter.
func Double(v float64) Parameter { return Parameter{Type: "DOUBLE", Value: v} }
