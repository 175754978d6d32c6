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


// Package query exposes the read API of the knowledge graph.
//
// The Service fetches entities from storage and hands them to the pure
// assembly functions in the graph package. It is the single layer that
// knows both where data lives and which view shapes exist, keeping
// storage and assembly free of each other.
package query
