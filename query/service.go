package query

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/graph"
	"github.com/poiesic/conceptmap/search"
	"github.com/poiesic/conceptmap/storage"
)

// Service answers graph view and search requests.
type Service struct {
	concepts storage.ConceptRepository
	blogs    storage.BlogRepository
	searcher *search.Searcher
	variant  graph.RootVariant
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRootVariant selects the shape of the root graph view.
// Default is graph.RootConceptsOnly.
func WithRootVariant(variant graph.RootVariant) Option {
	return func(s *Service) error {
		switch variant {
		case graph.RootConceptsOnly, graph.RootFull:
			s.variant = variant
			return nil
		default:
			return fmt.Errorf("%w: %s", graph.ErrUnknownRootVariant, variant)
		}
	}
}

// NewService creates a query service over the given repositories.
func NewService(concepts storage.ConceptRepository, blogs storage.BlogRepository, searcher *search.Searcher, opts ...Option) (*Service, error) {
	if concepts == nil {
		return nil, ErrConceptRepositoryRequired
	}
	if blogs == nil {
		return nil, ErrBlogRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Service{
		concepts: concepts,
		blogs:    blogs,
		searcher: searcher,
		variant:  graph.RootConceptsOnly,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// RootGraph assembles the root view of the whole graph. The configured
// root variant decides whether blog posts appear alongside concepts.
func (s *Service) RootGraph(ctx context.Context) (*core.Graph, error) {
	switch s.variant {
	case graph.RootFull:
		return s.fullRoot(ctx)
	default:
		return s.conceptsOnlyRoot(ctx)
	}
}

func (s *Service) conceptsOnlyRoot(ctx context.Context) (*core.Graph, error) {
	concepts, err := s.concepts.GetAllConcepts(ctx)
	if err != nil {
		s.logger.Error("error fetching concepts for root graph", "err", err)
		return nil, err
	}
	return graph.ConceptsOnlyRoot(concepts), nil
}

func (s *Service) fullRoot(ctx context.Context) (*core.Graph, error) {
	var (
		concepts []*core.Concept
		blogs    []*core.BlogPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		concepts, err = s.concepts.GetAllConcepts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		blogs, err = s.blogs.GetAllBlogPosts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("error fetching entities for root graph", "err", err)
		return nil, err
	}

	return graph.FullRoot(concepts, blogs), nil
}

// ConceptGraph assembles the drilldown view centered on one concept.
//
// Returns storage.ErrNotFound when the concept does not exist. Referenced
// blog posts and related concepts that cannot be resolved are omitted
// from the view rather than failing the request.
func (s *Service) ConceptGraph(ctx context.Context, id core.ID) (*core.Graph, error) {
	center, err := s.concepts.GetConcept(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		blogs   []*core.BlogPost
		related []*core.Concept
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blogs, err = s.blogs.GetBlogPosts(gctx, center.BlogPostIds...)
		return err
	})
	g.Go(func() error {
		var err error
		related, err = s.concepts.GetConcepts(gctx, center.RelatedIds...)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("error fetching neighbors for concept", "concept", id, "err", err)
		return nil, err
	}

	return graph.Drilldown(center, blogs, related), nil
}

// BlogExpansion assembles the expansion view centered on one blog post.
//
// Returns storage.ErrNotFound when the post does not exist. Related posts
// that cannot be resolved are omitted.
func (s *Service) BlogExpansion(ctx context.Context, id core.ID) (*core.Graph, error) {
	center, err := s.blogs.GetBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}

	related, err := s.blogs.GetBlogPosts(ctx, center.RelatedIds...)
	if err != nil {
		s.logger.Error("error fetching related posts", "post", id, "err", err)
		return nil, err
	}

	return graph.Expansion(center, related), nil
}

// Search ranks stored blog posts against the query text.
func (s *Service) Search(ctx context.Context, query string) (*core.SearchResponse, error) {
	return s.searcher.Search(ctx, query)
}
