package query

import (
	"context"
	"testing"

	"github.com/poiesic/conceptmap/ai/mock"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/graph"
	"github.com/poiesic/conceptmap/search"
	"github.com/poiesic/conceptmap/storage"
	"github.com/poiesic/conceptmap/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service  *Service
	concepts storage.ConceptRepository
	blogs    storage.BlogRepository
	embedder *mock.MockEmbedder
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	conceptRepo, blogRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	searcher, err := search.NewSearcher(blogRepo, embedder)
	require.NoError(t, err)

	service, err := NewService(conceptRepo, blogRepo, searcher, opts...)
	require.NoError(t, err)

	return &fixture{
		service:  service,
		concepts: conceptRepo,
		blogs:    blogRepo,
		embedder: embedder,
	}
}

func nodeIds(g *core.Graph) []core.ID {
	ids := make([]core.ID, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.Id)
	}
	return ids
}

func TestNewService(t *testing.T) {
	conceptRepo, blogRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	searcher, err := search.NewSearcher(blogRepo, mock.NewMockEmbedder())
	require.NoError(t, err)

	t.Run("requires concept repository", func(t *testing.T) {
		_, err := NewService(nil, blogRepo, searcher)
		require.ErrorIs(t, err, ErrConceptRepositoryRequired)
	})

	t.Run("requires blog repository", func(t *testing.T) {
		_, err := NewService(conceptRepo, nil, searcher)
		require.ErrorIs(t, err, ErrBlogRepositoryRequired)
	})

	t.Run("requires searcher", func(t *testing.T) {
		_, err := NewService(conceptRepo, blogRepo, nil)
		require.ErrorIs(t, err, ErrSearcherRequired)
	})

	t.Run("rejects unknown root variant", func(t *testing.T) {
		_, err := NewService(conceptRepo, blogRepo, searcher, WithRootVariant(graph.RootVariant(99)))
		require.ErrorIs(t, err, graph.ErrUnknownRootVariant)
	})
}

func TestRootGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("concepts only by default", func(t *testing.T) {
		f := newFixture(t)

		posts, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{Title: "Post", Content: "body"})
		require.NoError(t, err)

		added, err := f.concepts.AddConcepts(ctx,
			&core.Concept{Id: 1, Name: "Alpha", RelatedIds: []core.ID{2}, BlogPostIds: []core.ID{posts[0].Id}},
			&core.Concept{Id: 2, Name: "Beta"},
		)
		require.NoError(t, err)
		require.Len(t, added, 2)

		g, err := f.service.RootGraph(ctx)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 2)
		require.Len(t, g.Links, 1)
		assert.Equal(t, core.ID(1), g.Links[0].Source)
		assert.Equal(t, core.ID(2), g.Links[0].Target)
		for _, n := range g.Nodes {
			assert.Equal(t, core.NodeTypeConcept, n.Type)
		}
	})

	t.Run("full variant includes blog posts", func(t *testing.T) {
		f := newFixture(t, WithRootVariant(graph.RootFull))

		posts, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{Title: "Post", Content: "body"})
		require.NoError(t, err)

		_, err = f.concepts.AddConcepts(ctx,
			&core.Concept{Id: 1, Name: "Alpha", BlogPostIds: []core.ID{posts[0].Id}},
		)
		require.NoError(t, err)

		g, err := f.service.RootGraph(ctx)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 2)
		require.Len(t, g.Links, 1)
		assert.Equal(t, core.ID(1), g.Links[0].Source)
		assert.Equal(t, posts[0].Id, g.Links[0].Target)
	})

	t.Run("empty store yields empty graph", func(t *testing.T) {
		f := newFixture(t)

		g, err := f.service.RootGraph(ctx)
		require.NoError(t, err)
		assert.NotNil(t, g.Nodes)
		assert.NotNil(t, g.Links)
		assert.Empty(t, g.Nodes)
		assert.Empty(t, g.Links)
	})
}

func TestConceptGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("missing concept fails with not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ConceptGraph(ctx, 404)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("assembles center posts and related concepts", func(t *testing.T) {
		f := newFixture(t)

		posts, err := f.blogs.AddBlogPosts(ctx,
			&core.BlogPost{Title: "B1", Content: "body"},
			&core.BlogPost{Title: "B2", Content: "body"},
		)
		require.NoError(t, err)

		_, err = f.concepts.AddConcepts(ctx,
			&core.Concept{Id: 2, Name: "Related"},
			&core.Concept{
				Id:          1,
				Name:        "Center",
				BlogPostIds: []core.ID{posts[0].Id, posts[1].Id},
				RelatedIds:  []core.ID{2},
			},
		)
		require.NoError(t, err)

		g, err := f.service.ConceptGraph(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 4)
		assert.ElementsMatch(t, []core.ID{1, 2, posts[0].Id, posts[1].Id}, nodeIds(g))
		assert.Len(t, g.Links, 3)
		for _, l := range g.Links {
			assert.Equal(t, core.ID(1), l.Source)
		}
	})

	t.Run("unresolvable references omitted", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.concepts.AddConcepts(ctx, &core.Concept{
			Id:          1,
			Name:        "Center",
			BlogPostIds: []core.ID{999},
			RelatedIds:  []core.ID{888},
		})
		require.NoError(t, err)

		g, err := f.service.ConceptGraph(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 1)
		assert.Empty(t, g.Links)
	})
}

func TestBlogExpansion(t *testing.T) {
	ctx := context.Background()

	t.Run("missing post fails with not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.BlogExpansion(ctx, 404)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("assembles center and related posts", func(t *testing.T) {
		f := newFixture(t)

		related, err := f.blogs.AddBlogPosts(ctx,
			&core.BlogPost{Title: "Sibling", Content: "body"},
		)
		require.NoError(t, err)

		center, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{
			Title:      "Center",
			Content:    "body",
			RelatedIds: []core.ID{related[0].Id},
		})
		require.NoError(t, err)

		g, err := f.service.BlogExpansion(ctx, center[0].Id)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 2)
		require.Len(t, g.Links, 1)
		assert.Equal(t, center[0].Id, g.Links[0].Source)
		assert.Equal(t, related[0].Id, g.Links[0].Target)
		for _, n := range g.Nodes {
			assert.Equal(t, core.NodeTypeBlog, n.Type)
		}
	})

	t.Run("post without relations yields single node", func(t *testing.T) {
		f := newFixture(t)

		center, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{Title: "Lonely", Content: "body"})
		require.NoError(t, err)

		g, err := f.service.BlogExpansion(ctx, center[0].Id)
		require.NoError(t, err)
		assert.Len(t, g.Nodes, 1)
		assert.Empty(t, g.Links)
	})
}

func TestServiceSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	_, err := f.blogs.AddBlogPosts(ctx, &core.BlogPost{
		Title:   "Match",
		Content: "body",
		Vector:  []float32{1, 0.2},
	})
	require.NoError(t, err)

	resp, err := f.service.Search(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Match", resp.Results[0].Title)

	_, err = f.service.Search(ctx, " ")
	require.ErrorIs(t, err, core.ErrEmptyQuery)
}
