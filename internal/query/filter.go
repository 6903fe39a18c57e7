// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import "encoding/json"

// Filter is the closed set of row-filter expressions, composable into trees
// through the boolean combinators.
type Filter interface {
	filterType() string
}

// SelectorFilter matches rows whose dimension equals a value.
type SelectorFilter struct {
	Dimension string `json:"dimension"`
	Value     string `json:"value"`
}

func (SelectorFilter) filterType() string { return "selector" }

// MarshalJSON emits the filter with its fixed "selector" discriminator.
func (f SelectorFilter) MarshalJSON() ([]byte, error) {
	type alias SelectorFilter
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.filterType(), alias: alias(f)})
}

// Selector returns a filter matching rows where dimension equals value.
func Selector(dimension, value string) SelectorFilter {
	return SelectorFilter{Dimension: dimension, Value: value}
}

// AndFilter matches rows satisfying every sub-filter.
type AndFilter struct {
	Fields []Filter `json:"fields"`
}

func (AndFilter) filterType() string { return "and" }

// MarshalJSON emits the filter with its fixed "and" discriminator.
func (f AndFilter) MarshalJSON() ([]byte, error) {
	type alias AndFilter
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.filterType(), alias: alias(f)})
}

// And combines filters conjunctively.
func And(fields ...Filter) AndFilter {
	return AndFilter{Fields: fields}
}

// OrFilter matches rows satisfying any sub-filter.
type OrFilter struct {
	Fields []Filter `json:"fields"`
}

func (OrFilter) filterType() string { return "or" }

// MarshalJSON emits the filter with its fixed "or" discriminator.
func (f OrFilter) MarshalJSON() ([]byte, error) {
	type alias OrFilter
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.filterType(), alias: alias(f)})
}

// Or combines filters disjunctively.
func Or(fields ...Filter) OrFilter {
	return OrFilter{Fields: fields}
}

// NotFilter inverts a sub-filter.
type NotFilter struct {
	Field Filter `json:"field"`
}

func (NotFilter) filterType() string { return "not" }

// MarshalJSON emits the filter with its fixed "not" discriminator.
func (f NotFilter) MarshalJSON() ([]byte, error) {
	type alias NotFilter
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.filterType(), alias: alias(f)})
}

// Not inverts the given filter.
func Not(field Filter) NotFilter {
	return NotFilter{Field: field}
}
