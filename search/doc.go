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


// Package search provides semantic search over blog posts.
//
// A query string is embedded once, scored against every stored blog
// embedding with cosine similarity, filtered by a minimum score, and
// ranked descending. Threshold and result limit are policy values owned
// by the caller; the ranking algorithm takes them as parameters.
//
// Posts without a stored embedding are never candidates. Embeddings of
// mismatched dimensionality abort the search with a data-integrity error
// rather than being skipped.
package search
