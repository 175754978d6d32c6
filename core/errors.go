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

import "errors"

// Request and data-integrity errors
var (
	// ErrEmptyQuery indicates a search query that is empty or whitespace-only.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrEmbeddingUnavailable indicates the embedding provider failed or
	// returned no vector. Callers may retry.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorDimension indicates two embeddings of mismatched dimensionality
	// were compared. This is a corpus integrity bug, never silently tolerated.
	ErrVectorDimension = errors.New("embedding dimension mismatch")

	// ErrInvalidNodeType indicates a NodeType value outside the closed enumeration.
	ErrInvalidNodeType = errors.New("invalid node type")
)

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrInvalidBlogPost indicates a BlogPost failed validation.
	ErrInvalidBlogPost = errors.New("invalid blog post")

	// ErrEmptyConceptName indicates the concept Name field is empty.
	ErrEmptyConceptName = errors.New("concept name cannot be empty")

	// ErrEmptyBlogTitle indicates the blog post Title field is empty.
	ErrEmptyBlogTitle = errors.New("blog post title cannot be empty")

	// ErrEmptyBlogContent indicates the blog post Content field is empty.
	ErrEmptyBlogContent = errors.New("blog post content cannot be empty")
)
