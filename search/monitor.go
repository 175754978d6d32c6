package search

import "github.com/poiesic/conceptmap/core"

// SearchMonitor receives callbacks at each stage of a search.
// Implementations are used for diagnostics and CLI progress display.
type SearchMonitor interface {
	// Start is called with the raw query before any work happens.
	Start(query string)

	// AfterEmbedding is called once the query embedding is available.
	AfterEmbedding(vector []float32)

	// AfterCandidateFetch is called with the number of posts that carry
	// an embedding and will be scored.
	AfterCandidateFetch(count int)

	// Finish is called with the final ranked results.
	Finish(results []core.SearchHit)
}

// noopMonitor is used when the caller supplies no monitor.
type noopMonitor struct{}

func (noopMonitor) Start(string)              {}
func (noopMonitor) AfterEmbedding([]float32)  {}
func (noopMonitor) AfterCandidateFetch(int)   {}
func (noopMonitor) Finish([]core.SearchHit)   {}
