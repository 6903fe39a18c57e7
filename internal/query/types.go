// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import "encoding/json"

// Granularity is the time-bucketing resolution of a query. Wire spellings
// are the engine's fixed literals.
type Granularity string

const (
	GranularityAll     Granularity = "ALL"
	GranularityNone    Granularity = "NONE"
	GranularitySecond  Granularity = "SECOND"
	GranularityMinute  Granularity = "MINUTE"
	GranularityHour    Granularity = "HOUR"
	GranularityDay     Granularity = "DAY"
	GranularityWeek    Granularity = "WEEK"
	GranularityMonth   Granularity = "MONTH"
	GranularityQuarter Granularity = "QUARTER"
	GranularityYear    Granularity = "YEAR"
)

// Ordering is a sort direction, used by scan queries and limit-spec columns.
type Ordering string

const (
	OrderingNone       Ordering = "none"
	OrderingAscending  Ordering = "ascending"
	OrderingDescending Ordering = "descending"
)

// OutputType is the engine-side type of a dimension output column.
type OutputType string

const (
	OutputTypeString OutputType = "STRING"
	OutputTypeLong   OutputType = "LONG"
	OutputTypeFloat  OutputType = "FLOAT"
	OutputTypeDouble OutputType = "DOUBLE"
)

// SortingOrder is a string comparator used for limit-spec collation and
// post-aggregation ordering.
type SortingOrder string

const (
	SortLexicographic SortingOrder = "lexicographic"
	SortAlphanumeric  SortingOrder = "alphanumeric"
	SortNumeric       SortingOrder = "numeric"
	SortStrlen        SortingOrder = "strlen"
	SortVersion       SortingOrder = "version"
)

// ResultFormat selects the row encoding of a scan query response.
type ResultFormat string

const (
	ResultFormatList          ResultFormat = "list"
	ResultFormatCompactedList ResultFormat = "compactedList"
)

// JoinType is the join operator of a join datasource.
type JoinType string

const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
)

// OrderByColumnSpec orders a group-by result by one column with an explicit
// direction and collation.
type OrderByColumnSpec struct {
	Dimension      string       `json:"dimension"`
	Direction      Ordering     `json:"direction"`
	DimensionOrder SortingOrder `json:"dimensionOrder"`
}

// OrderBy returns an order-by column spec.
func OrderBy(dimension string, direction Ordering, order SortingOrder) OrderByColumnSpec {
	return OrderByColumnSpec{Dimension: dimension, Direction: direction, DimensionOrder: order}
}

// LimitSpec caps a group-by result at Limit rows after ordering it by
// Columns, in sequence. The column order is significant and preserved.
type LimitSpec struct {
	Limit   int                 `json:"limit"`
	Columns []OrderByColumnSpec `json:"columns"`
}

// MarshalJSON emits the limit spec with its fixed "default" discriminator.
func (l LimitSpec) MarshalJSON() ([]byte, error) {
	type alias LimitSpec
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "default", alias: alias(l)})
}

// UnmarshalJSON accepts the wire form produced by MarshalJSON. Limit specs
// are the one query sub-structure decoded back (round-trip tests and tooling
// that inspects saved queries), so the codec is lossless here.
func (l *LimitSpec) UnmarshalJSON(data []byte) error {
	type alias LimitSpec
	var wire struct {
		Type string `json:"type"`
		alias
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*l = LimitSpec(wire.alias)
	return nil
}

// HavingSpec is the closed set of post-aggregation comparators a group-by
// result can be filtered with.
type HavingSpec interface {
	havingType() string
}

// GreaterThanHaving keeps groups whose aggregation exceeds Value.
type GreaterThanHaving struct {
	Aggregation string  `json:"aggregation"`
	Value       float64 `json:"value"`
}

func (GreaterThanHaving) havingType() string { return "greaterThan" }

// MarshalJSON emits the comparator with its fixed "greaterThan" discriminator.
func (h GreaterThanHaving) MarshalJSON() ([]byte, error) {
	type alias GreaterThanHaving
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: h.havingType(), alias: alias(h)})
}

// HavingGreaterThan keeps groups where aggregation > value.
func HavingGreaterThan(aggregation string, value float64) GreaterThanHaving {
	return GreaterThanHaving{Aggregation: aggregation, Value: value}
}

// LessThanHaving keeps groups whose aggregation is below Value.
type LessThanHaving struct {
	Aggregation string  `json:"aggregation"`
	Value       float64 `json:"value"`
}

func (LessThanHaving) havingType() string { return "lessThan" }

// MarshalJSON emits the comparator with its fixed "lessThan" discriminator.
func (h LessThanHaving) MarshalJSON() ([]byte, error) {
	type alias LessThanHaving
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: h.havingType(), alias: alias(h)})
}

// HavingLessThan keeps groups where aggregation < value.
func HavingLessThan(aggregation string, value float64) LessThanHaving {
	return LessThanHaving{Aggregation: aggregation, Value: value}
}

// EqualToHaving keeps groups whose aggregation equals Value.
type EqualToHaving struct {
	Aggregation string  `json:"aggregation"`
	Value       float64 `json:"value"`
}

func (EqualToHaving) havingType() string { return "equalTo" }

// MarshalJSON emits the comparator with its fixed "equalTo" discriminator.
func (h EqualToHaving) MarshalJSON() ([]byte, error) {
	type alias EqualToHaving
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: h.havingType(), alias: alias(h)})
}

// HavingEqualTo keeps groups where aggregation == value.
func HavingEqualTo(aggregation string, value float64) EqualToHaving {
	return EqualToHaving{Aggregation: aggregation, Value: value}
}
