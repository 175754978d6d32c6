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


// Package server exposes the query service over HTTP.
//
// Routes:
//
//	GET /graph            root view (concepts-only or full, per config)
//	GET /graph?id=N       drilldown centered on concept N
//	GET /graph/expand?id=N  expansion centered on blog post N
//	GET /search?q=text    semantic search over blog posts
package server
