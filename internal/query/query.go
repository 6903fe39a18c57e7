// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query models native analytical queries for a Druid-compatible engine.
//
// Each queryable construct (query shapes, data sources, dimensions, filters,
// aggregations, post-aggregations) is a closed variant family: an unexported
// marker-method interface with one struct per variant, so a value can never
// carry fields belonging to the wrong shape. The package is pure data plus
// its JSON wire codec; it performs no I/O and knows nothing about transport.
//
// Serialization is one-way: queries are constructed and encoded, never parsed
// back. Every variant emits an explicit discriminator ("queryType" or "type")
// whose literal spelling is fixed by the engine's wire schema, not derived
// from the Go identifier. Absent optional fields are omitted from the JSON
// object, never emitted as null.
package query

import "encoding/json"

// Query is the closed set of top-level query shapes.
// Implementations live in this package only.
type Query interface {
	queryType() string
}

// TopN ranks values of a single dimension by a metric and keeps the top
// threshold entries. All fields are required on the wire.
type TopN struct {
	DataSource   DataSource    `json:"dataSource"`
	Dimension    Dimension     `json:"dimension"`
	Metric       string        `json:"metric"`
	Threshold    int           `json:"threshold"`
	Aggregations []Aggregation `json:"aggregations"`
	Intervals    []string      `json:"intervals"`
	Granularity  Granularity   `json:"granularity"`
}

func (TopN) queryType() string { return "topN" }

// MarshalJSON emits the query with its fixed "topN" discriminator.
func (q TopN) MarshalJSON() ([]byte, error) {
	type alias TopN
	return json.Marshal(struct {
		QueryType string `json:"queryType"`
		alias
	}{QueryType: q.queryType(), alias: alias(q)})
}

// Scan streams raw rows for a column projection. Limit, Filter, Ordering and
// Context are optional and omitted when unset.
type Scan struct {
	DataSource   DataSource   `json:"dataSource"`
	BatchSize    int          `json:"batchSize"`
	Intervals    []string     `json:"intervals"`
	ResultFormat ResultFormat `json:"resultFormat"`
	Columns      []string     `json:"columns"`
	Limit        int64        `json:"limit,omitempty"`
	Filter       Filter       `json:"filter,omitempty"`
	Ordering     Ordering     `json:"ordering,omitempty"`
	Context      Context      `json:"context,omitempty"`
}

func (Scan) queryType() string { return "scan" }

// MarshalJSON emits the query with its fixed "scan" discriminator.
func (q Scan) MarshalJSON() ([]byte, error) {
	type alias Scan
	return json.Marshal(struct {
		QueryType string `json:"queryType"`
		alias
	}{QueryType: q.queryType(), alias: alias(q)})
}

// GroupBy buckets rows by a dimension list and computes aggregations per
// group, with optional limit/having/post-aggregation modifiers.
type GroupBy struct {
	DataSource       DataSource        `json:"dataSource"`
	Dimensions       []Dimension       `json:"dimensions"`
	Granularity      Granularity       `json:"granularity"`
	Aggregations     []Aggregation     `json:"aggregations"`
	Intervals        []string          `json:"intervals"`
	LimitSpec        *LimitSpec        `json:"limitSpec,omitempty"`
	Having           HavingSpec        `json:"having,omitempty"`
	Filter           Filter            `json:"filter,omitempty"`
	PostAggregations []PostAggregation `json:"postAggregations,omitempty"`
	SubtotalSpec     [][]string        `json:"subtotalSpec,omitempty"`
	Context          Context           `json:"context,omitempty"`
}

func (GroupBy) queryType() string { return "groupBy" }

// MarshalJSON emits the query with its fixed "groupBy" discriminator.
func (q GroupBy) MarshalJSON() ([]byte, error) {
	type alias GroupBy
	return json.Marshal(struct {
		QueryType string `json:"queryType"`
		alias
	}{QueryType: q.queryType(), alias: alias(q)})
}

// Timeseries computes aggregations per time bucket over the whole datasource.
type Timeseries struct {
	DataSource       DataSource        `json:"dataSource"`
	Granularity      Granularity       `json:"granularity"`
	Aggregations     []Aggregation     `json:"aggregations"`
	Intervals        []string          `json:"intervals"`
	Descending       bool              `json:"descending,omitempty"`
	Filter           Filter            `json:"filter,omitempty"`
	PostAggregations []PostAggregation `json:"postAggregations,omitempty"`
	Context          Context           `json:"context,omitempty"`
}

func (Timeseries) queryType() string { return "timeseries" }

// MarshalJSON emits the query with its fixed "timeseries" discriminator.
func (q Timeseries) MarshalJSON() ([]byte, error) {
	type alias Timeseries
	return json.Marshal(struct {
		QueryType string `json:"queryType"`
		alias
	}{QueryType: q.queryType(), alias: alias(q)})
}

// Context is an unordered bag of engine tuning parameters (priority, timeout,
// queryId, ...). Keys and values are opaque to this package and pass through
// to the engine verbatim.
type Context map[string]any
