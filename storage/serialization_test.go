package storage

import (
	"testing"
	"time"

	"github.com/poiesic/conceptmap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("distributed tracing")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalConcept(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	concept := &core.Concept{
		Id:          core.IDFromContent("gossip protocols"),
		Name:        "gossip protocols",
		BlogPostIds: []core.ID{1, 2, 2, 3}, // duplicates survive storage
		RelatedIds:  []core.ID{7},
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	data := MarshalConcept(concept)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalConcept(data)
	require.NoError(t, err)
	assert.Equal(t, concept, decoded)
}

func TestMarshalUnmarshalConcept_EmptyRelations(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	concept := &core.Concept{
		Id:         1,
		Name:       "naming things",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalConcept(MarshalConcept(concept))
	require.NoError(t, err)
	assert.Equal(t, concept, decoded)
	assert.Nil(t, decoded.BlogPostIds)
	assert.Nil(t, decoded.RelatedIds)
}

func TestMarshalUnmarshalBlogPost(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	post := &core.BlogPost{
		Id:         core.IDFromContent("Why CRDTs Converge"),
		Title:      "Why CRDTs Converge",
		Excerpt:    "A short tour of join semilattices — and why order doesn't matter.",
		Content:    "Conflict-free replicated data types rely on commutative merges...",
		ConceptIds: []core.ID{10, 11},
		RelatedIds: []core.ID{20},
		Vector:     []float32{0.25, -0.5, 0.125},
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalBlogPost(MarshalBlogPost(post))
	require.NoError(t, err)
	assert.Equal(t, post, decoded)
}

func TestMarshalUnmarshalBlogPost_NoVector(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	post := &core.BlogPost{
		Id:         5,
		Title:      "日本語のタイトル",
		Content:    "unicode content préservé",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalBlogPost(MarshalBlogPost(post))
	require.NoError(t, err)
	assert.Equal(t, post, decoded)
	assert.False(t, decoded.HasVector())
}

func TestUnmarshalConcept_Truncated(t *testing.T) {
	now := time.Now().UTC()
	concept := &core.Concept{Id: 1, Name: "truncation", InsertedAt: now, UpdatedAt: now}
	data := MarshalConcept(concept)

	_, err := UnmarshalConcept(data[:len(data)-2])
	assert.Error(t, err)
}
