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


// Package graph assembles node/link views over the concept/blog corpus.
//
// Assembly is pure: functions take already-resolved entities and produce a
// core.Graph. Fetching (and deciding what to fetch) belongs to the query
// service. Three views exist:
//
//   - Root: every concept, optionally every blog post, with the full
//     relation edge set. Two explicit variants (concepts-only and full);
//     the caller picks one by calling the matching function.
//   - Concept drilldown: one concept expanded into its tagged blogs and
//     related concepts.
//   - Blog expansion: one blog post expanded into its related posts.
//
// All views guarantee unique node ids and links whose endpoints are both
// present in the node set. Relation ids that resolve to no supplied entity
// produce neither a node nor a link.
package graph
