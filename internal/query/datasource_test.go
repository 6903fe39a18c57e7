// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"druidkit/cli/internal/druiderr"
)

func TestJoinBuilderComplete(t *testing.T) {
	ds, err := Join(JoinInner).
		Left(Table("wikipedia")).
		Right(Table("countries"), "c.").
		Condition(`countryName == "c.Name"`).
		Build()
	require.NoError(t, err)

	assert.Equal(t, Table("wikipedia"), ds.Left)
	assert.Equal(t, Table("countries"), ds.Right)
	assert.Equal(t, JoinInner, ds.JoinType)
	assert.Equal(t, "c.", ds.RightPrefix)

	obj := roundTrip(t, ds)
	assert.ElementsMatch(t, []string{
		"type", "left", "right", "joinType", "rightPrefix", "condition",
	}, keysOf(obj))
	assert.Equal(t, "join", obj["type"])
	assert.Equal(t, "INNER", obj["joinType"])
}

func TestJoinBuilderMissingParts(t *testing.T) {
	tests := []struct {
		name      string
		builder   *JoinBuilder
		wantField string
	}{
		{
			name:      "missing condition",
			builder:   Join(JoinInner).Left(Table("a")).Right(Table("b"), "b."),
			wantField: "condition",
		},
		{
			name:      "missing left",
			builder:   Join(JoinInner).Right(Table("b"), "b.").Condition("x == y"),
			wantField: "left",
		},
		{
			name:      "missing right",
			builder:   Join(JoinLeft).Left(Table("a")).Condition("x == y"),
			wantField: "right",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			require.Error(t, err)

			var e *druiderr.E
			require.True(t, errors.As(err, &e))
			assert.Equal(t, druiderr.MissingField, e.Kind)
			assert.Equal(t, tt.wantField, e.Field)
		})
	}
}

func TestJoinBuilderSingleUse(t *testing.T) {
	b := Join(JoinInner).
		Left(Table("a")).
		Right(Table("b"), "b.").
		Condition("x == y")

	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	require.Error(t, err)
	assert.True(t, druiderr.IsKind(err, druiderr.BuilderReused))
}

func TestJoinWithSubqueryRightSide(t *testing.T) {
	inner := Scan{
		DataSource:   Table("countries"),
		BatchSize:    10,
		Intervals:    []string{testInterval},
		ResultFormat: ResultFormatList,
		Columns:      []string{"Name", "languages"},
		Ordering:     OrderingNone,
	}

	ds, err := Join(JoinInner).
		Left(Table("wikipedia")).
		Right(FromQuery(inner), "c.").
		Condition(`countryName == "c.Name"`).
		Build()
	require.NoError(t, err)

	obj := roundTrip(t, ds)
	right := obj["right"].(map[string]any)
	assert.Equal(t, "query", right["type"])
	assert.Equal(t, "scan", right["query"].(map[string]any)["queryType"])
}
