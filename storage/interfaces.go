package storage

import (
	"context"

	"github.com/poiesic/conceptmap/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// ConceptRepository provides operations for managing concepts.
type ConceptRepository interface {
	Repository

	// AddConcepts adds one or more concepts to storage.
	// For concepts with ID=0, generates content-based IDs from the name.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the concepts with IDs and timestamps populated.
	AddConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// UpdateConcepts updates existing concepts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any concept doesn't exist.
	UpdateConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// DeleteConcepts removes concepts by their IDs.
	// Returns ErrNotFound if any concept doesn't exist.
	// Relation lists pointing at a deleted concept are left as-is; the
	// resulting dangling references are dropped at read time.
	DeleteConcepts(ctx context.Context, ids ...core.ID) error

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetConcepts retrieves multiple concepts by their IDs.
	// Returns only the concepts that exist (no error for missing ids).
	GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error)

	// GetAllConcepts retrieves every stored concept.
	GetAllConcepts(ctx context.Context) ([]*core.Concept, error)

	// FindConceptByName finds a concept by its display name.
	// Returns ErrNotFound if no matching concept exists.
	FindConceptByName(ctx context.Context, name string) (*core.Concept, error)
}

// BlogRepository provides operations for managing blog posts.
type BlogRepository interface {
	Repository

	// AddBlogPosts adds one or more blog posts to storage.
	// For posts with ID=0, generates content-based IDs from the title.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the posts with IDs and timestamps populated.
	AddBlogPosts(ctx context.Context, posts ...*core.BlogPost) ([]*core.BlogPost, error)

	// UpdateBlogPosts updates existing blog posts.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any post doesn't exist.
	UpdateBlogPosts(ctx context.Context, posts ...*core.BlogPost) ([]*core.BlogPost, error)

	// DeleteBlogPosts removes blog posts by their IDs.
	// Returns ErrNotFound if any post doesn't exist.
	DeleteBlogPosts(ctx context.Context, ids ...core.ID) error

	// GetBlogPost retrieves a single blog post by ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetBlogPost(ctx context.Context, id core.ID) (*core.BlogPost, error)

	// GetBlogPosts retrieves multiple blog posts by their IDs.
	// Returns only the posts that exist (no error for missing ids).
	GetBlogPosts(ctx context.Context, ids ...core.ID) ([]*core.BlogPost, error)

	// GetAllBlogPosts retrieves every stored blog post, with or without
	// an embedding.
	GetAllBlogPosts(ctx context.Context) ([]*core.BlogPost, error)

	// GetBlogPostsWithVector retrieves only the blog posts that have a
	// computed embedding. These are the semantic search candidates.
	GetBlogPostsWithVector(ctx context.Context) ([]*core.BlogPost, error)
}
