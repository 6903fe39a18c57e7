// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import "encoding/json"

// Aggregation is the closed set of per-group aggregation functions. Each
// variant is a record of exactly the parameters its engine-side function
// requires.
type Aggregation interface {
	aggregationType() string
}

// CountAggregation counts rows per group.
type CountAggregation struct {
	Name string `json:"name"`
}

func (CountAggregation) aggregationType() string { return "count" }

// MarshalJSON emits the aggregation with its fixed "count" discriminator.
func (a CountAggregation) MarshalJSON() ([]byte, error) {
	type alias CountAggregation
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.aggregationType(), alias: alias(a)})
}

// Count returns a count aggregation with the given output name.
func Count(name string) CountAggregation {
	return CountAggregation{Name: name}
}

// StringFirstAggregation captures the earliest string value of a column,
// truncated to MaxStringBytes.
type StringFirstAggregation struct {
	Name           string `json:"name"`
	FieldName      string `json:"fieldName"`
	MaxStringBytes int    `json:"maxStringBytes"`
}

func (StringFirstAggregation) aggregationType() string { return "stringFirst" }

// MarshalJSON emits the aggregation with its fixed "stringFirst" discriminator.
func (a StringFirstAggregation) MarshalJSON() ([]byte, error) {
	type alias StringFirstAggregation
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.aggregationType(), alias: alias(a)})
}

// StringFirst returns a stringFirst aggregation over fieldName with the given
// byte budget for the captured value.
func StringFirst(name, fieldName string, maxStringBytes int) StringFirstAggregation {
	return StringFirstAggregation{Name: name, FieldName: fieldName, MaxStringBytes: maxStringBytes}
}

// LongSumAggregation sums an integer column per group.
type LongSumAggregation struct {
	Name      string `json:"name"`
	FieldName string `json:"fieldName"`
}

func (LongSumAggregation) aggregationType() string { return "longSum" }

// MarshalJSON emits the aggregation with its fixed "longSum" discriminator.
func (a LongSumAggregation) MarshalJSON() ([]byte, error) {
	type alias LongSumAggregation
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.aggregationType(), alias: alias(a)})
}

// LongSum returns a longSum aggregation over fieldName.
func LongSum(name, fieldName string) LongSumAggregation {
	return LongSumAggregation{Name: name, FieldName: fieldName}
}

// DoubleSumAggregation sums a floating-point column per group.
type DoubleSumAggregation struct {
	Name      string `json:"name"`
	FieldName string `json:"fieldName"`
}

func (DoubleSumAggregation) aggregationType() string { return "doubleSum" }

// MarshalJSON emits the aggregation with its fixed "doubleSum" discriminator.
func (a DoubleSumAggregation) MarshalJSON() ([]byte, error) {
	type alias DoubleSumAggregation
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.aggregationType(), alias: alias(a)})
}

// DoubleSum returns a doubleSum aggregation over fieldName.
func DoubleSum(name, fieldName string) DoubleSumAggregation {
	return DoubleSumAggregation{Name: name, FieldName: fieldName}
}
