// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import "encoding/json"

// PostAggregation is a named arithmetic expression computed over already
// aggregated values. Its leaves reference earlier aggregation or
// post-aggregation names; that ordering rule is the engine's contract and is
// not validated here — a violation comes back as the engine's own error
// envelope.
type PostAggregation struct {
	Name     string           `json:"name"`
	Fn       string           `json:"fn"`
	Fields   []PostAggregator `json:"fields"`
	Ordering SortingOrder     `json:"ordering,omitempty"`
}

// MarshalJSON emits the post-aggregation with its fixed "arithmetic"
// discriminator.
func (p PostAggregation) MarshalJSON() ([]byte, error) {
	type alias PostAggregation
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: "arithmetic", alias: alias(p)})
}

// Arithmetic returns a named arithmetic post-aggregation applying fn ("+",
// "-", "*", "/", "quotient") across the given leaves in order.
func Arithmetic(name, fn string, fields ...PostAggregator) PostAggregation {
	return PostAggregation{Name: name, Fn: fn, Fields: fields}
}

// PostAggregator is the closed set of leaves a post-aggregation expression
// is built from.
type PostAggregator interface {
	postAggregatorType() string
}

// FieldAccessPostAggregator references an aggregation output by name.
type FieldAccessPostAggregator struct {
	Name      string `json:"name"`
	FieldName string `json:"fieldName"`
}

func (FieldAccessPostAggregator) postAggregatorType() string { return "fieldAccess" }

// MarshalJSON emits the leaf with its fixed "fieldAccess" discriminator.
func (p FieldAccessPostAggregator) MarshalJSON() ([]byte, error) {
	type alias FieldAccessPostAggregator
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: p.postAggregatorType(), alias: alias(p)})
}

// FieldAccess returns a leaf referencing the aggregation named fieldName.
func FieldAccess(name, fieldName string) FieldAccessPostAggregator {
	return FieldAccessPostAggregator{Name: name, FieldName: fieldName}
}

// ConstantPostAggregator is a numeric literal leaf.
type ConstantPostAggregator struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (ConstantPostAggregator) postAggregatorType() string { return "constant" }

// MarshalJSON emits the leaf with its fixed "constant" discriminator.
func (p ConstantPostAggregator) MarshalJSON() ([]byte, error) {
	type alias ConstantPostAggregator
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: p.postAggregatorType(), alias: alias(p)})
}

// Constant returns a numeric literal leaf.
func Constant(name string, value float64) ConstantPostAggregator {
	return ConstantPostAggregator{Name: name, Value: value}
}
