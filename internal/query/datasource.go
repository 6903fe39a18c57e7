// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"encoding/json"

	"druidkit/cli/internal/druiderr"
)

// DataSource is the closed set of things a query can read from: a named
// table, a join of two sources, or a sub-query.
type DataSource interface {
	sourceType() string
}

// TableDataSource reads from a named datasource.
type TableDataSource struct {
	Name string `json:"name"`
}

func (TableDataSource) sourceType() string { return "table" }

// MarshalJSON emits the datasource with its fixed "table" discriminator.
func (d TableDataSource) MarshalJSON() ([]byte, error) {
	type alias TableDataSource
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: d.sourceType(), alias: alias(d)})
}

// Table returns a datasource for the named table.
func Table(name string) TableDataSource {
	return TableDataSource{Name: name}
}

// JoinDataSource joins a left source against a right source on a condition
// expression. Values are produced only by JoinBuilder.Build, which guarantees
// both sides and the condition are present.
type JoinDataSource struct {
	Left        DataSource `json:"left"`
	Right       DataSource `json:"right"`
	JoinType    JoinType   `json:"joinType"`
	RightPrefix string     `json:"rightPrefix"`
	Condition   string     `json:"condition"`
}

func (JoinDataSource) sourceType() string { return "join" }

// MarshalJSON emits the datasource with its fixed "join" discriminator.
func (d JoinDataSource) MarshalJSON() ([]byte, error) {
	type alias JoinDataSource
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: d.sourceType(), alias: alias(d)})
}

// QueryDataSource wraps a query so it can be used as a datasource.
type QueryDataSource struct {
	Query Query `json:"query"`
}

func (QueryDataSource) sourceType() string { return "query" }

// MarshalJSON emits the datasource with its fixed "query" discriminator.
func (d QueryDataSource) MarshalJSON() ([]byte, error) {
	type alias QueryDataSource
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: d.sourceType(), alias: alias(d)})
}

// FromQuery returns a datasource that reads a sub-query's result.
func FromQuery(q Query) QueryDataSource {
	return QueryDataSource{Query: q}
}

// JoinBuilder stages construction of a JoinDataSource. The left side, right
// side and condition are all required; Build is the single point where their
// presence is checked. A builder is single-use: finalizing twice is reported
// as a misuse error rather than silently producing a second value.
type JoinBuilder struct {
	joinType    JoinType
	left        DataSource
	right       DataSource
	rightPrefix string
	condition   string
	hasLeft     bool
	hasRight    bool
	done        bool
}

// Join starts building a join datasource of the given type.
func Join(joinType JoinType) *JoinBuilder {
	return &JoinBuilder{joinType: joinType}
}

// Left sets the left side of the join.
func (b *JoinBuilder) Left(ds DataSource) *JoinBuilder {
	b.left = ds
	b.hasLeft = true
	return b
}

// Right sets the right side of the join and the prefix applied to its
// columns (e.g. "c." so the condition can reference "c.Name").
func (b *JoinBuilder) Right(ds DataSource, rightPrefix string) *JoinBuilder {
	b.right = ds
	b.rightPrefix = rightPrefix
	b.hasRight = true
	return b
}

// Condition sets the join condition expression.
func (b *JoinBuilder) Condition(expr string) *JoinBuilder {
	b.condition = expr
	return b
}

// Build finalizes the join. It fails with a missing_field error naming the
// first absent required part, or with builder_reused when called again after
// a successful Build. No partial JoinDataSource is ever returned.
func (b *JoinBuilder) Build() (JoinDataSource, error) {
	if b.done {
		return JoinDataSource{}, druiderr.New(druiderr.BuilderReused, "join builder already finalized")
	}
	if !b.hasLeft {
		return JoinDataSource{}, druiderr.NewMissingField("left")
	}
	if !b.hasRight {
		return JoinDataSource{}, druiderr.NewMissingField("right")
	}
	if b.condition == "" {
		return JoinDataSource{}, druiderr.NewMissingField("condition")
	}
	b.done = true
	return JoinDataSource{
		Left:        b.left,
		Right:       b.right,
		JoinType:    b.joinType,
		RightPrefix: b.rightPrefix,
		Condition:   b.condition,
	}, nil
}
