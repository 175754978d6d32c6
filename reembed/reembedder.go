// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/storage"
)

// Reembedder regenerates embeddings for stored blog posts.
// By default only posts without a vector are processed; WithForce extends
// the run to every post.
type Reembedder struct {
	blogs      storage.BlogRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	batchSize  int
	force      bool
	maxRetries int
	retryDelay time.Duration
	progress   io.Writer
	logger     *slog.Logger
}

// Option configures a Reembedder.
type Option func(*Reembedder) error

// WithForce reembeds every post, including those that already carry a vector.
func WithForce(force bool) Option {
	return func(r *Reembedder) error {
		r.force = force
		return nil
	}
}

// WithBatchSize sets how many posts are embedded per API call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(r *Reembedder) error {
		if size < 1 {
			size = 1
		}
		r.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Reembedder) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithRetry sets the retry policy for embedding API calls.
// Defaults are 3 attempts with a 1s base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Reembedder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxRetries = maxAttempts
		r.retryDelay = baseDelay
		return nil
	}
}

// WithProgressWriter sets where progress output is written.
// Default is io.Discard.
func WithProgressWriter(w io.Writer) Option {
	return func(r *Reembedder) error {
		if w == nil {
			w = io.Discard
		}
		r.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reembedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewReembedder creates a new reembedder.
func NewReembedder(blogs storage.BlogRepository, embedder ai.Embedder, opts ...Option) (*Reembedder, error) {
	if blogs == nil {
		return nil, ErrBlogRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Reembedder{
		blogs:      blogs,
		embedder:   embedder,
		pool:       pool,
		batchSize:  32,
		maxRetries: 3,
		retryDelay: 1 * time.Second,
		progress:   io.Discard,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Run embeds the eligible posts and writes the vectors back to storage.
// Batches run concurrently on the worker pool; the first batch failure is
// returned after all in-flight batches finish.
func (r *Reembedder) Run(ctx context.Context) error {
	posts, err := r.blogs.GetAllBlogPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to query posts: %w", err)
	}

	pending := posts
	if !r.force {
		pending = make([]*core.BlogPost, 0, len(posts))
		for _, post := range posts {
			if !post.HasVector() {
				pending = append(pending, post)
			}
		}
	}

	if len(pending) == 0 {
		fmt.Fprintf(r.progress, "No posts need embedding (%d posts total)\n", len(posts))
		return nil
	}

	fmt.Fprintf(r.progress, "Embedding %d of %d posts (batch size: %d)\n",
		len(pending), len(posts), r.batchSize)

	tracker := NewProgressTracker(r.progress, len(pending), r.batchSize)
	tracker.Start()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for start := 0; start < len(pending); start += r.batchSize {
		end := start + r.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			if err := r.processBatch(ctx, batch); err != nil {
				r.logger.Error("error processing batch", "size", len(batch), "err", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Embedding complete. Processed %d posts in %v (%.1f posts/sec)\n",
		len(pending), elapsed.Round(time.Second), float64(len(pending))/elapsed.Seconds())

	return nil
}

// processBatch embeds one batch and updates the posts in storage.
// Vectors are normalized so stored embeddings stay comparable under
// cosine similarity.
func (r *Reembedder) processBatch(ctx context.Context, posts []*core.BlogPost) error {
	texts := make([]string, len(posts))
	for i, post := range posts {
		texts[i] = EmbeddingText(post)
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.maxRetries, r.retryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.maxRetries, err)
	}

	if len(vectors) != len(posts) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(posts), len(vectors))
	}

	for i := range posts {
		posts[i].Vector = NormalizeVector(vectors[i])
	}

	if _, err := r.blogs.UpdateBlogPosts(ctx, posts...); err != nil {
		return fmt.Errorf("failed to update posts: %w", err)
	}

	return nil
}

// EmbeddingText returns the text a post is embedded from: the title
// followed by the content body.
func EmbeddingText(post *core.BlogPost) string {
	if post.Title == "" {
		return post.Content
	}
	return post.Title + "\n\n" + post.Content
}

// Release releases the worker pool.
// The reembedder should not be used after calling Release.
func (r *Reembedder) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
