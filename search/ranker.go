package search

import (
	"fmt"
	"sort"

	"github.com/poiesic/conceptmap/core"
)

// snippetLength is the number of characters taken from the content body
// when a post has no excerpt. The slice is an exact character cut with no
// word-boundary trimming.
const snippetLength = 120

// Rank scores every candidate against the query vector, discards scores
// below threshold, sorts descending, and truncates to limit. The sort is
// stable: candidates with equal scores keep their input order.
//
// Candidates are expected to carry an embedding; the upstream fetch
// excludes posts without one. A candidate vector of different length than
// the query vector aborts ranking with core.ErrVectorDimension.
func Rank(query []float32, candidates []*core.BlogPost, threshold float32, limit int) ([]core.SearchHit, error) {
	hits := make([]core.SearchHit, 0, len(candidates))
	for _, post := range candidates {
		score, err := CosineSimilarity(query, post.Vector)
		if err != nil {
			return nil, fmt.Errorf("scoring post %d: %w", post.Id, err)
		}
		if score < threshold {
			continue
		}
		hits = append(hits, core.SearchHit{
			Id:      post.Id,
			Type:    core.NodeTypeBlog,
			Title:   post.Title,
			Snippet: Snippet(post),
			Score:   score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Snippet returns the post's excerpt when present, otherwise the first
// snippetLength characters of the content body.
func Snippet(post *core.BlogPost) string {
	if post.Excerpt != "" {
		return post.Excerpt
	}
	runes := []rune(post.Content)
	if len(runes) <= snippetLength {
		return post.Content
	}
	return string(runes[:snippetLength])
}
