// Copyright (c) 2025 Druidkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package druid

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"druidkit/cli/internal/druiderr"
	"druidkit/cli/internal/druidsql"
	"druidkit/cli/internal/query"
)

type wikiPage struct {
	Page  string  `json:"page"`
	User  *string `json:"user"`
	Count int     `json:"count"`
}

func testTopN() query.TopN {
	return query.TopN{
		DataSource:   query.Table("wikipedia"),
		Dimension:    query.NewDimension("page"),
		Metric:       "count",
		Threshold:    10,
		Aggregations: []query.Aggregation{query.Count("count")},
		Intervals:    []string{"2024-01-01T00:00:00Z/2024-02-01T00:00:00Z"},
		Granularity:  query.GranularityAll,
	}
}

// newTestClient points a client at a stub broker.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New([]string{srv.URL})
	require.NoError(t, err)
	return c
}

func TestNewRequiresNodes(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, druiderr.IsKind(err, druiderr.InvalidConfig))
}

func TestQueryPostsSerializedBody(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Write([]byte(`[]`))
	})

	_, err := Query[wikiPage](context.Background(), c, testTopN())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/druid/v2", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "topN", gotBody["queryType"])
}

func TestQueryDecodesTypedRows(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"page":"A","user":"u","count":3}]`))
	})

	result, err := Query[wikiPage](context.Background(), c, testTopN())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())

	row := result.Rows()[0]
	assert.Equal(t, "A", row.Page)
	require.NotNil(t, row.User)
	assert.Equal(t, "u", *row.User)
	assert.Equal(t, 3, row.Count)
}

func TestQueryDecodesMissingOptionalField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"page":"A","count":3}]`))
	})

	result, err := Query[wikiPage](context.Background(), c, testTopN())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Nil(t, result.Rows()[0].User)
}

func TestQueryClassifiesErrorEnvelope(t *testing.T) {
	raw := `{"error":"x"}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(raw))
	})

	_, err := Query[wikiPage](context.Background(), c, testTopN())
	require.Error(t, err)

	var e *druiderr.E
	require.True(t, errors.As(err, &e))
	assert.Equal(t, druiderr.ServerError, e.Kind)
	assert.Equal(t, raw, e.Response)
}

func TestQueryMalformedResponseIsParseFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := Query[wikiPage](context.Background(), c, testTopN())
	require.Error(t, err)
	assert.True(t, druiderr.IsKind(err, druiderr.ParseFailed))
	assert.False(t, druiderr.IsKind(err, druiderr.ServerError))
}

func TestQueryRowShapeMismatchIsParseFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"page":"A","count":"not a number"}]`))
	})

	_, err := Query[wikiPage](context.Background(), c, testTopN())
	require.Error(t, err)
	assert.True(t, druiderr.IsKind(err, druiderr.ParseFailed))
}

func TestQueryTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c, err := New([]string{srv.URL})
	require.NoError(t, err)

	_, err = Query[wikiPage](context.Background(), c, testTopN())
	require.Error(t, err)
	assert.True(t, druiderr.IsKind(err, druiderr.TransportFailed))
}

func TestBasicAuthHeader(t *testing.T) {
	var gotUser, gotPass string
	var gotAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c, err := New([]string{srv.URL}, WithBasicAuth("druid", "s3cret"))
	require.NoError(t, err)

	_, err = Query[wikiPage](context.Background(), c, testTopN())
	require.NoError(t, err)
	assert.True(t, gotAuth)
	assert.Equal(t, "druid", gotUser)
	assert.Equal(t, "s3cret", gotPass)
}

func TestSQLPostsStatement(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Write([]byte(`[{"page":"A","count":1}]`))
	})

	stmt := druidsql.New("SELECT page, count FROM wikipedia WHERE page = ?",
		druidsql.Varchar("A"))
	result, err := SQL[wikiPage](context.Background(), c, stmt)
	require.NoError(t, err)

	assert.Equal(t, "/druid/v2/sql", gotPath)
	assert.Equal(t, "object", gotBody["resultFormat"])
	params := gotBody["parameters"].([]any)
	require.Len(t, params, 1)
	assert.Equal(t, map[string]any{"type": "VARCHAR", "value": "A"}, params[0])
	assert.Equal(t, 1, result.Len())
}

func TestStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		w.Write([]byte(`{"version":"30.0.0","modules":[{"name":"druid-histogram"}]}`))
	})

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "30.0.0", status.Version)
	require.Len(t, status.Modules, 1)
	assert.Equal(t, "druid-histogram", status.Modules[0].Name)
}
