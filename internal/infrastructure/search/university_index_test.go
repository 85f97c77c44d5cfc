package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*UniversityIndex, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewUniversityIndex(es, "universities"), &calls
}

func TestSearchReturnsIDsInHitOrder(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"id":7}},{"_source":{"id":2}}]}}`))
	})

	ids, err := idx.Search(context.Background(), "medical", 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 2}, ids)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/universities/_search", call.path)
	var q map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.body), &q))
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "medical", mm["query"])
}

func TestIndexUsesUniversityIDAsDocumentID(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	u := entity.University{ID: 42}
	u.Name = entity.Text("X", "Х", "X")
	require.NoError(t, idx.Index(context.Background(), u))

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.Equal(t, "/universities/_doc/42", (*calls)[0].path)
	assert.Contains(t, (*calls)[0].body, `"en":"X"`)
}

func TestDeleteIgnoresMissingDocument(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	assert.NoError(t, idx.Delete(context.Background(), 9))
}

func TestReindexSendsBulkPairs(t *testing.T) {
	idx, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	})

	all := []entity.University{{ID: 1}, {ID: 2}}
	require.NoError(t, idx.Reindex(context.Background(), all))

	require.Len(t, *calls, 1)
	lines := strings.Split(strings.TrimSpace((*calls)[0].body), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], `"_id":"1"`)
}

func TestReindexReportsItemErrors(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":true,"items":[]}`))
	})
	assert.Error(t, idx.Reindex(context.Background(), []entity.University{{ID: 1}}))
}
