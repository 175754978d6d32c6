package query

import "errors"

var (
	// ErrConceptRepositoryRequired indicates a nil concept repository was provided.
	ErrConceptRepositoryRequired = errors.New("concept repository is required")

	// ErrBlogRepositoryRequired indicates a nil blog repository was provided.
	ErrBlogRepositoryRequired = errors.New("blog repository is required")

	// ErrSearcherRequired indicates a nil searcher was provided.
	ErrSearcherRequired = errors.New("searcher is required")
)
