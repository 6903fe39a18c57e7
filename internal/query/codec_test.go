// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInterval = "-146136543-09-08T08:23:32.096Z/146140482-04-24T15:36:27.903Z"

// roundTrip re-parses encoded JSON structurally, independent of the model.
func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestTopNWireShape(t *testing.T) {
	q := TopN{
		DataSource: Table("wikipedia"),
		Dimension:  NewDimension("page"),
		Metric:     "count",
		Threshold:  10,
		Aggregations: []Aggregation{
			Count("count"),
			StringFirst("user", "user", 1024),
		},
		Intervals:   []string{testInterval},
		Granularity: GranularityAll,
	}

	obj := roundTrip(t, q)
	assert.ElementsMatch(t, []string{
		"queryType", "dataSource", "dimension", "metric", "threshold",
		"aggregations", "intervals", "granularity",
	}, keysOf(obj))

	assert.Equal(t, "topN", obj["queryType"])
	assert.Equal(t, "ALL", obj["granularity"])
	assert.Equal(t, float64(10), obj["threshold"])

	ds := obj["dataSource"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "table", "name": "wikipedia"}, ds)

	dim := obj["dimension"].(map[string]any)
	assert.Equal(t, "default", dim["type"])
	assert.Equal(t, "page", dim["dimension"])
	assert.Equal(t, "STRING", dim["outputType"])

	aggs := obj["aggregations"].([]any)
	require.Len(t, aggs, 2)
	assert.Equal(t, map[string]any{"type": "count", "name": "count"}, aggs[0])
	assert.Equal(t, map[string]any{
		"type": "stringFirst", "name": "user", "fieldName": "user",
		"maxStringBytes": float64(1024),
	}, aggs[1])
}

func TestScanOmitsAbsentOptionals(t *testing.T) {
	q := Scan{
		DataSource:   Table("countries"),
		BatchSize:    10,
		Intervals:    []string{testInterval},
		ResultFormat: ResultFormatList,
		Columns:      []string{"Name", "languages"},
	}

	obj := roundTrip(t, q)
	assert.ElementsMatch(t, []string{
		"queryType", "dataSource", "batchSize", "intervals", "resultFormat", "columns",
	}, keysOf(obj))
	assert.Equal(t, "scan", obj["queryType"])
	assert.Equal(t, "list", obj["resultFormat"])
}

func TestScanKeepsPresentOptionals(t *testing.T) {
	q := Scan{
		DataSource:   Table("countries"),
		BatchSize:    10,
		Intervals:    []string{testInterval},
		ResultFormat: ResultFormatList,
		Columns:      []string{},
		Limit:        10,
		Filter:       Selector("Name", "France"),
		Ordering:     OrderingNone,
		Context:      Context{"queryId": "abc"},
	}

	obj := roundTrip(t, q)
	assert.Equal(t, float64(10), obj["limit"])
	assert.Equal(t, "none", obj["ordering"])
	assert.Equal(t, map[string]any{"queryId": "abc"}, obj["context"])
	assert.Equal(t, map[string]any{
		"type": "selector", "dimension": "Name", "value": "France",
	}, obj["filter"])
}

func TestGroupByWireShape(t *testing.T) {
	q := GroupBy{
		DataSource: Table("wikipedia"),
		Dimensions: []Dimension{DefaultDimension{
			Dimension:  "page",
			OutputName: "title",
			OutputType: OutputTypeString,
		}},
		Granularity: GranularityAll,
		Aggregations: []Aggregation{
			Count("count"),
			StringFirst("user", "user", 1024),
		},
		Intervals: []string{testInterval},
		LimitSpec: &LimitSpec{
			Limit:   10,
			Columns: []OrderByColumnSpec{OrderBy("title", OrderingDescending, SortAlphanumeric)},
		},
		Having: HavingGreaterThan("count_frac", 0.01),
		Filter: Selector("user", "Taffe316"),
		PostAggregations: []PostAggregation{
			Arithmetic("count_frac", "/",
				FieldAccess("count_percent", "count"),
				Constant("hundred", 100),
			),
		},
	}

	obj := roundTrip(t, q)
	assert.ElementsMatch(t, []string{
		"queryType", "dataSource", "dimensions", "granularity", "aggregations",
		"intervals", "limitSpec", "having", "filter", "postAggregations",
	}, keysOf(obj))

	assert.Equal(t, "groupBy", obj["queryType"])

	limit := obj["limitSpec"].(map[string]any)
	assert.Equal(t, "default", limit["type"])
	assert.Equal(t, float64(10), limit["limit"])
	cols := limit["columns"].([]any)
	require.Len(t, cols, 1)
	assert.Equal(t, map[string]any{
		"dimension":      "title",
		"direction":      "descending",
		"dimensionOrder": "alphanumeric",
	}, cols[0])

	having := obj["having"].(map[string]any)
	assert.Equal(t, map[string]any{
		"type": "greaterThan", "aggregation": "count_frac", "value": 0.01,
	}, having)

	post := obj["postAggregations"].([]any)
	require.Len(t, post, 1)
	arith := post[0].(map[string]any)
	assert.Equal(t, "arithmetic", arith["type"])
	assert.Equal(t, "/", arith["fn"])
	fields := arith["fields"].([]any)
	require.Len(t, fields, 2)
	assert.Equal(t, "fieldAccess", fields[0].(map[string]any)["type"])
	assert.Equal(t, "constant", fields[1].(map[string]any)["type"])
}

func TestGroupByOmitsEmptySubtotalSpec(t *testing.T) {
	q := GroupBy{
		DataSource:   Table("wikipedia"),
		Dimensions:   []Dimension{NewDimension("page")},
		Granularity:  GranularityAll,
		Aggregations: []Aggregation{Count("count")},
		Intervals:    []string{testInterval},
		SubtotalSpec: [][]string{},
	}

	obj := roundTrip(t, q)
	assert.NotContains(t, keysOf(obj), "subtotalSpec")
	assert.NotContains(t, keysOf(obj), "limitSpec")
	assert.NotContains(t, keysOf(obj), "having")
	assert.NotContains(t, keysOf(obj), "context")
}

func TestTimeseriesWireShape(t *testing.T) {
	q := Timeseries{
		DataSource:   Table("wikipedia"),
		Granularity:  GranularityDay,
		Aggregations: []Aggregation{LongSum("edits", "count")},
		Intervals:    []string{testInterval},
		Descending:   true,
	}

	obj := roundTrip(t, q)
	assert.Equal(t, "timeseries", obj["queryType"])
	assert.Equal(t, "DAY", obj["granularity"])
	assert.Equal(t, true, obj["descending"])
	aggs := obj["aggregations"].([]any)
	require.Len(t, aggs, 1)
	assert.Equal(t, map[string]any{
		"type": "longSum", "name": "edits", "fieldName": "count",
	}, aggs[0])
}

func TestNestedQueryDataSource(t *testing.T) {
	inner := Scan{
		DataSource:   Table("countries"),
		BatchSize:    10,
		Intervals:    []string{testInterval},
		ResultFormat: ResultFormatList,
		Columns:      []string{"Name"},
	}
	obj := roundTrip(t, FromQuery(inner))

	assert.Equal(t, "query", obj["type"])
	nested := obj["query"].(map[string]any)
	assert.Equal(t, "scan", nested["queryType"])
}

func TestLimitSpecRoundTripLossless(t *testing.T) {
	spec := LimitSpec{
		Limit:   10,
		Columns: []OrderByColumnSpec{OrderBy("title", OrderingDescending, SortAlphanumeric)},
	}

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var back LimitSpec
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, spec, back)
}

func TestEncodingIsIdempotent(t *testing.T) {
	q := GroupBy{
		DataSource:   Table("wikipedia"),
		Dimensions:   []Dimension{NewDimension("page")},
		Granularity:  GranularityAll,
		Aggregations: []Aggregation{Count("count")},
		Intervals:    []string{testInterval},
	}

	first, err := json.Marshal(q)
	require.NoError(t, err)
	second, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnumWireSpellings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"granularity all", string(GranularityAll), "ALL"},
		{"ordering descending", string(OrderingDescending), "descending"},
		{"ordering none", string(OrderingNone), "none"},
		{"output type string", string(OutputTypeString), "STRING"},
		{"sorting alphanumeric", string(SortAlphanumeric), "alphanumeric"},
		{"result format list", string(ResultFormatList), "list"},
		{"result format compacted", string(ResultFormatCompactedList), "compactedList"},
		{"join inner", string(JoinInner), "INNER"},
		{"join left", string(JoinLeft), "LEFT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
