package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/observability"
)

func fixture(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.SetAttribute("name", "demo")
	for _, k := range []string{"a", "b", "c", "x/y"} {
		_, err := g.AddNode(k, graph.Attributes{"label": strings.ToUpper(k)})
		require.NoError(t, err)
	}
	_, err := g.AddDirectedEdgeWithKey("ab", "a", "b", graph.Attributes{"weight": 1})
	require.NoError(t, err)
	_, err = g.AddUndirectedEdgeWithKey("bc", "b", "c", nil)
	require.NoError(t, err)
	_, err = g.AddDirectedEdgeWithKey("aa", "a", "a", nil)
	require.NoError(t, err)
	return g
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := New(fixture(t))
	w := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestGraphRoutes(t *testing.T) {
	s := New(fixture(t))

	t.Run("graph", func(t *testing.T) {
		w := get(t, s, "/graph")
		require.Equal(t, http.StatusOK, w.Code)
		doc := decode[graph.SerializedGraph](t, w)
		assert.Len(t, doc.Nodes, 4)
		assert.Len(t, doc.Edges, 3)
		require.NotNil(t, doc.Options)
		assert.Equal(t, "mixed", doc.Options.Type)
	})

	t.Run("inspect", func(t *testing.T) {
		w := get(t, s, "/graph/inspect")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[map[string]any](t, w)
		assert.Equal(t, "demo", resp["graph"])
		assert.Equal(t, "Graph", resp["name"])
		assert.EqualValues(t, 4, resp["order"])
		assert.EqualValues(t, 3, resp["size"])
	})

	t.Run("nodes", func(t *testing.T) {
		w := get(t, s, "/nodes")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"a", "b", "c", "x/y"}, decode[[]string](t, w))
	})
}

func TestNodeRoutes(t *testing.T) {
	s := New(fixture(t))

	t.Run("node", func(t *testing.T) {
		w := get(t, s, "/nodes/a")
		require.Equal(t, http.StatusOK, w.Code)
		node := decode[graph.SerializedNode](t, w)
		assert.Equal(t, "a", node.Key)
		assert.Equal(t, "A", node.Attributes["label"])
	})

	t.Run("escaped key", func(t *testing.T) {
		w := get(t, s, "/nodes/x%2Fy")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "x/y", decode[graph.SerializedNode](t, w).Key)
	})

	t.Run("degree", func(t *testing.T) {
		w := get(t, s, "/nodes/a/degree")
		require.Equal(t, http.StatusOK, w.Code)
		deg := decode[graph.Degrees](t, w)
		assert.Equal(t, 1, deg.In)
		assert.Equal(t, 2, deg.Out)
		assert.Equal(t, 0, deg.Undirected)
	})

	t.Run("neighbors", func(t *testing.T) {
		w := get(t, s, "/nodes/b/neighbors")
		require.Equal(t, http.StatusOK, w.Code)
		assert.ElementsMatch(t, []string{"a", "c"}, decode[[]string](t, w))

		w = get(t, s, "/nodes/b/neighbors?type=undirected")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"c"}, decode[[]string](t, w))

		w = get(t, s, "/nodes/c/neighbors?type=directed")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{}, decode[[]string](t, w))
	})

	t.Run("edges", func(t *testing.T) {
		w := get(t, s, "/nodes/b/edges?type=directed&direction=in")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"ab"}, decode[[]string](t, w))

		w = get(t, s, "/nodes/a/edges?to=b")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"ab"}, decode[[]string](t, w))
	})

	t.Run("edge", func(t *testing.T) {
		w := get(t, s, "/edges/bc")
		require.Equal(t, http.StatusOK, w.Code)
		edge := decode[graph.SerializedEdge](t, w)
		assert.Equal(t, "b", edge.Source)
		assert.Equal(t, "c", edge.Target)
		assert.True(t, edge.Undirected)
	})
}

func TestErrors(t *testing.T) {
	s := New(fixture(t))

	tests := []struct {
		target string
		status int
		code   errors.Code
	}{
		{"/nodes/missing", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/nodes/missing/degree", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/edges/missing", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/nodes/a/neighbors?direction=sideways", http.StatusBadRequest, errors.ErrCodeInvalidArguments},
		{"/nodes/a/edges?type=hyper", http.StatusBadRequest, errors.ErrCodeInvalidArguments},
		{"/nodes/a/edges?to=missing", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/nodes/%01/degree", http.StatusBadRequest, errors.ErrCodeInvalidKey},
		{"/render.svg?rankdir=diagonal", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/render.svg?detailed=maybe", http.StatusBadRequest, errors.ErrCodeInvalidArguments},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(t, s, tt.target)
			assert.Equal(t, tt.status, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeNotFound:         http.StatusNotFound,
		errors.ErrCodeInvalidArguments: http.StatusBadRequest,
		errors.ErrCodeUnsupported:      http.StatusBadRequest,
		errors.ErrCodeUsage:            http.StatusConflict,
		errors.ErrCodeNetwork:          http.StatusBadGateway,
		errors.ErrCodeInternal:         http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, statusFor(code), code)
	}
}

func TestReplace(t *testing.T) {
	s := New(fixture(t))

	g := graph.NewDirected()
	_, err := g.AddNode("solo", nil)
	require.NoError(t, err)
	s.Replace(g)

	w := get(t, s, "/nodes")
	assert.Equal(t, []string{"solo"}, decode[[]string](t, w))
	assert.Same(t, g, s.Graph())
}

func TestCORS(t *testing.T) {
	s := New(fixture(t), WithCORSOrigin("https://example.com"))

	req := httptest.NewRequest(http.MethodOptions, "/nodes", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, s, "/nodes")
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(t, New(fixture(t)), "/nodes")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	s := New(fixture(t))
	get(t, s, "/nodes")
	get(t, s, "/nodes/missing")

	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.statuses)
}

type countingCache struct {
	cache.Cache
	hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		c.hits++
	}
	return data, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestRenderCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	cc := &countingCache{Cache: fc}
	s := New(fixture(t), WithCache(cc))

	first := get(t, s, "/render.svg?rankdir=LR")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "image/svg+xml", first.Header().Get("Content-Type"))
	assert.Contains(t, first.Body.String(), "<svg")

	second := get(t, s, "/render.svg?rankdir=LR")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
	assert.Equal(t, 1, cc.sets)
	assert.Equal(t, 1, cc.hits)

	// A different graph hashes to a different key.
	_, err = s.Graph().AddNode("d", nil)
	require.NoError(t, err)
	third := get(t, s, "/render.svg?rankdir=LR")
	require.Equal(t, http.StatusOK, third.Code)
	assert.NotEqual(t, first.Header().Get("ETag"), third.Header().Get("ETag"))
	assert.Equal(t, 2, cc.sets)
}
