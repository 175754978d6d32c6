// Package mock provides test doubles for the ai package interfaces.
//
// The mock embedder produces deterministic unit vectors from text hashes,
// so tests get stable similarity scores without a running embedding service.
package mock
