package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/conceptmap/ai/mock"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/query"
	"github.com/poiesic/conceptmap/search"
	"github.com/poiesic/conceptmap/storage"
	"github.com/poiesic/conceptmap/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server   *Server
	concepts storage.ConceptRepository
	blogs    storage.BlogRepository
	embedder *mock.MockEmbedder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conceptRepo, blogRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	searcher, err := search.NewSearcher(blogRepo, embedder)
	require.NoError(t, err)

	service, err := query.NewService(conceptRepo, blogRepo, searcher)
	require.NoError(t, err)

	srv, err := NewServer(service)
	require.NoError(t, err)

	return &fixture{
		server:   srv,
		concepts: conceptRepo,
		blogs:    blogRepo,
		embedder: embedder,
	}
}

func (f *fixture) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(nil)
	require.ErrorIs(t, err, ErrQueryServiceRequired)
}

func TestGraphEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("root graph", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.concepts.AddConcepts(ctx,
			&core.Concept{Id: 1, Name: "Alpha", RelatedIds: []core.ID{2}},
			&core.Concept{Id: 2, Name: "Beta"},
		)
		require.NoError(t, err)

		rec, body := f.get(t, "/graph")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["nodes"], 2)
		assert.Len(t, body["links"], 1)
	})

	t.Run("empty root graph marshals arrays", func(t *testing.T) {
		f := newFixture(t)

		rec, _ := f.get(t, "/graph")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"nodes":[],"links":[]}`, rec.Body.String())
	})

	t.Run("drilldown by id", func(t *testing.T) {
		f := newFixture(t)
		posts, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{Title: "Post", Content: "body"})
		require.NoError(t, err)
		_, err = f.concepts.AddConcepts(ctx, &core.Concept{
			Id: 1, Name: "Alpha", BlogPostIds: []core.ID{posts[0].Id},
		})
		require.NoError(t, err)

		rec, body := f.get(t, "/graph?id=1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["nodes"], 2)
		assert.Len(t, body["links"], 1)
	})

	t.Run("unknown concept is 404", func(t *testing.T) {
		f := newFixture(t)

		rec, body := f.get(t, "/graph?id=12345")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not found", body["error"])
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		f := newFixture(t)

		rec, body := f.get(t, "/graph?id=abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid id", body["error"])
	})
}

func TestExpandEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("expansion by id", func(t *testing.T) {
		f := newFixture(t)
		related, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{Title: "Other", Content: "body"})
		require.NoError(t, err)
		center, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{
			Title: "Center", Content: "body", RelatedIds: []core.ID{related[0].Id},
		})
		require.NoError(t, err)

		rec, body := f.get(t, fmt.Sprintf("/graph/expand?id=%d", center[0].Id))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["nodes"], 2)
		assert.Len(t, body["links"], 1)
	})

	t.Run("missing id is 400", func(t *testing.T) {
		f := newFixture(t)

		rec, body := f.get(t, "/graph/expand")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id is required", body["error"])
	})

	t.Run("unknown post is 404", func(t *testing.T) {
		f := newFixture(t)

		rec, _ := f.get(t, "/graph/expand?id=777")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearchEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked hits", func(t *testing.T) {
		f := newFixture(t)
		f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}
		_, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{
			Title:   "Match",
			Excerpt: "about matching",
			Content: "body",
			Vector:  []float32{1, 0.1},
		})
		require.NoError(t, err)

		rec, body := f.get(t, "/search?q=matching")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "matching", body["query"])

		results, ok := body["results"].([]any)
		require.True(t, ok)
		require.Len(t, results, 1)
		hit := results[0].(map[string]any)
		assert.Equal(t, "Match", hit["title"])
		assert.Equal(t, "blog", hit["type"])
		assert.Equal(t, "about matching", hit["snippet"])
	})

	t.Run("missing q is 400", func(t *testing.T) {
		f := newFixture(t)

		rec, body := f.get(t, "/search")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "q is required", body["error"])
	})

	t.Run("whitespace query is 400", func(t *testing.T) {
		f := newFixture(t)

		rec, _ := f.get(t, "/search?q=%20%20")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("embedder outage is 503", func(t *testing.T) {
		f := newFixture(t)
		f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("connection refused")
		}

		rec, body := f.get(t, "/search?q=anything")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "embedding service unavailable", body["error"])
	})
}
