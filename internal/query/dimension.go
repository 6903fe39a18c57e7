// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import "encoding/json"

// Dimension is the closed set of grouping/output column specifications.
// Only the default dimension spec is modeled; extraction-function variants
// would join this family with their own discriminators.
type Dimension interface {
	dimensionType() string
}

// DefaultDimension maps an input column to an output name and type without
// any value transformation.
type DefaultDimension struct {
	Dimension  string     `json:"dimension"`
	OutputName string     `json:"outputName"`
	OutputType OutputType `json:"outputType"`
}

func (DefaultDimension) dimensionType() string { return "default" }

// MarshalJSON emits the dimension with its fixed "default" discriminator.
func (d DefaultDimension) MarshalJSON() ([]byte, error) {
	type alias DefaultDimension
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: d.dimensionType(), alias: alias(d)})
}

// NewDimension returns a string-typed default dimension whose output name is
// the column itself.
func NewDimension(column string) DefaultDimension {
	return DefaultDimension{Dimension: column, OutputName: column, OutputType: OutputTypeString}
}
