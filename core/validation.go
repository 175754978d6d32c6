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


package core

import "fmt"

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - ID (0 is valid and replaced with a content-based ID on insert)
//   - BlogPostIds / RelatedIds (may reference entities that no longer
//     exist; dangling references are tolerated at read time)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if concept.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyConceptName)
	}

	return nil
}

// ValidateBlogPost validates a BlogPost according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Content must not be empty
//
// NOT validated:
//   - Vector (can be empty until the embedding pipeline runs)
//   - Excerpt (optional)
//   - ID (0 is valid and replaced with a content-based ID on insert)
func ValidateBlogPost(post *BlogPost) error {
	if post == nil {
		return fmt.Errorf("%w: post is nil", ErrInvalidBlogPost)
	}

	if post.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBlogPost, ErrEmptyBlogTitle)
	}

	if post.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidBlogPost, ErrEmptyBlogContent)
	}

	return nil
}

// ValidateNodeType validates that a NodeType has a valid value.
func ValidateNodeType(t NodeType) error {
	if t != NodeTypeConcept && t != NodeTypeBlog {
		return fmt.Errorf("%w: value %d", ErrInvalidNodeType, t)
	}
	return nil
}
