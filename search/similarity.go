package search

import (
	"fmt"
	"math"

	"github.com/poiesic/conceptmap/core"
)

// CosineSimilarity computes dot(a,b) / (‖a‖ * ‖b‖) in the range [-1, 1].
// If either vector has zero magnitude the similarity is 0, never NaN.
// Vectors of different lengths indicate corrupt corpus data and return
// core.ErrVectorDimension.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", core.ErrVectorDimension, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}
