package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/storage"
)

// Default ranking policy. These are configurable defaults, not algorithm
// constants: Rank itself takes threshold and limit as parameters.
const (
	DefaultThreshold float32 = 0.40
	DefaultLimit             = 10
)

// Searcher ranks blog posts against free-text queries by embedding
// similarity.
type Searcher struct {
	blogRepository storage.BlogRepository
	embedder       ai.Embedder
	threshold      float32
	limit          int
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithThreshold overrides the minimum similarity score.
func WithThreshold(threshold float32) Option {
	return func(s *Searcher) error {
		s.threshold = threshold
		return nil
	}
}

// WithLimit overrides the maximum number of results.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 1 {
			limit = 1
		}
		s.limit = limit
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(blogRepository storage.BlogRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if blogRepository == nil {
		return nil, ErrBlogRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		blogRepository: blogRepository,
		embedder:       embedder,
		threshold:      DefaultThreshold,
		limit:          DefaultLimit,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks stored blog posts against the query text.
func (s *Searcher) Search(ctx context.Context, query string) (*core.SearchResponse, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor ranks stored blog posts against the query text and
// reports each stage to the monitor.
//
// Fails with core.ErrEmptyQuery for empty or whitespace-only queries and
// with core.ErrEmbeddingUnavailable when the embedding provider errors or
// returns no vector.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	monitor.Start(query)

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
	}
	if len(vector) == 0 {
		s.logger.Error("embedder returned no vector", "query", query)
		return nil, core.ErrEmbeddingUnavailable
	}
	monitor.AfterEmbedding(vector)

	candidates, err := s.blogRepository.GetBlogPostsWithVector(ctx)
	if err != nil {
		s.logger.Error("error fetching search candidates", "err", err)
		return nil, err
	}
	monitor.AfterCandidateFetch(len(candidates))

	results, err := Rank(vector, candidates, s.threshold, s.limit)
	if err != nil {
		// Dimension mismatches point at a corpus bug; surface, never skip
		s.logger.Error("error ranking candidates", "err", err)
		return nil, err
	}
	monitor.Finish(results)

	return &core.SearchResponse{
		Query:   query,
		Results: results,
	}, nil
}
