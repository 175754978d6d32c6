package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/conceptmap/core"
	"github.com/poiesic/conceptmap/storage"
)

// BlogRepository implements storage.BlogRepository for BadgerDB.
type BlogRepository struct {
	backend *Backend
}

var _ storage.BlogRepository = (*BlogRepository)(nil)

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(backend *Backend) (*BlogRepository, error) {
	return &BlogRepository{
		backend: backend,
	}, nil
}

// Close releases resources. BlogRepository has no resources to release.
func (r *BlogRepository) Close() error {
	return nil
}

// AddBlogPosts adds one or more blog posts to storage.
func (r *BlogRepository) AddBlogPosts(ctx context.Context, posts ...*core.BlogPost) ([]*core.BlogPost, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, post := range posts {
			if err := core.ValidateBlogPost(post); err != nil {
				return err
			}

			// Use content-based ID if not set
			if post.Id == 0 {
				post.Id = core.IDFromContent(post.Title)
			}

			// Set timestamps
			post.InsertedAt = time.Now().UTC()
			post.UpdatedAt = post.InsertedAt

			key := makeBlogKey(post.Id)
			value := storage.MarshalBlogPost(post)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return posts, err
}

// UpdateBlogPosts updates existing blog posts.
func (r *BlogRepository) UpdateBlogPosts(ctx context.Context, posts ...*core.BlogPost) ([]*core.BlogPost, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, post := range posts {
			key := makeBlogKey(post.Id)

			old, err := readBlogPost(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			post.UpdatedAt = time.Now().UTC()

			value := storage.MarshalBlogPost(post)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return posts, err
}

// DeleteBlogPosts removes blog posts by their IDs.
func (r *BlogRepository) DeleteBlogPosts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeBlogKey(id)

			post, err := readBlogPost(tx, key)
			if err != nil {
				return err
			}
			if post == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetBlogPost retrieves a single blog post by ID.
func (r *BlogRepository) GetBlogPost(ctx context.Context, id core.ID) (*core.BlogPost, error) {
	var result *core.BlogPost
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readBlogPost(tx, makeBlogKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetBlogPosts retrieves multiple blog posts by their IDs.
// Missing ids are silently omitted from the result.
func (r *BlogRepository) GetBlogPosts(ctx context.Context, ids ...core.ID) ([]*core.BlogPost, error) {
	var result []*core.BlogPost
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			post, err := readBlogPost(tx, makeBlogKey(id))
			if err != nil {
				return err
			}
			if post != nil {
				result = append(result, post)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetAllBlogPosts retrieves every stored blog post.
func (r *BlogRepository) GetAllBlogPosts(ctx context.Context) ([]*core.BlogPost, error) {
	return r.scanBlogPosts(func(*core.BlogPost) bool { return true })
}

// GetBlogPostsWithVector retrieves only blog posts that have a computed
// embedding. Posts without a vector never become search candidates.
func (r *BlogRepository) GetBlogPostsWithVector(ctx context.Context) ([]*core.BlogPost, error) {
	return r.scanBlogPosts(func(post *core.BlogPost) bool { return post.HasVector() })
}

// scanBlogPosts iterates all blog post records and keeps those matching the filter.
func (r *BlogRepository) scanBlogPosts(keep func(*core.BlogPost) bool) ([]*core.BlogPost, error) {
	var result []*core.BlogPost
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(blogRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var post *core.BlogPost
			err := iter.Item().Value(func(val []byte) error {
				var err error
				post, err = storage.UnmarshalBlogPost(val)
				return err
			})
			if err != nil {
				return err
			}
			if keep(post) {
				result = append(result, post)
			}
		}
		return nil
	}, false)
	return result, err
}

// readBlogPost reads a blog post from the transaction.
// Returns nil without error if the key does not exist.
func readBlogPost(tx *badger.Txn, key []byte) (*core.BlogPost, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var post *core.BlogPost
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		post, unmarshalErr = storage.UnmarshalBlogPost(val)
		return unmarshalErr
	})
	return post, err
}
