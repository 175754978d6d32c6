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


// Package storage provides the storage abstraction layer for conceptmap.
//
// This package defines the entity store contract consumed by the graph
// assembler, the searcher, and the query service. It decouples storage
// implementation from business logic so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - ConceptRepository: operations for concept records
//   - BlogRepository: operations for blog post records
//
// Batch getters (GetConcepts, GetBlogPosts) silently omit ids that do not
// resolve; single getters return ErrNotFound. This asymmetry is deliberate:
// a missing center entity is an error, a dangling relation reference is a
// tolerated data-consistency gap.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
