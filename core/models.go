package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NodeType identifies the kind of entity behind a graph node.
type NodeType int

const (
	// NodeTypeConcept represents a concept (topic/tag) node.
	NodeTypeConcept NodeType = iota + 1
	// NodeTypeBlog represents a blog post node.
	NodeTypeBlog
)

// String returns the wire representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeConcept:
		return "concept"
	case NodeTypeBlog:
		return "blog"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// MarshalJSON encodes the node type as its wire string ("concept" or "blog").
func (t NodeType) MarshalJSON() ([]byte, error) {
	switch t {
	case NodeTypeConcept, NodeTypeBlog:
		return []byte(`"` + t.String() + `"`), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidNodeType, int(t))
	}
}

// UnmarshalJSON decodes a node type from its wire string.
func (t *NodeType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"concept"`:
		*t = NodeTypeConcept
	case `"blog"`:
		*t = NodeTypeBlog
	default:
		return fmt.Errorf("%w: %s", ErrInvalidNodeType, data)
	}
	return nil
}

// Concept represents a topic entity in the knowledge graph.
// Relation lists are append-only ordered sequences; they may contain
// duplicates or ids of deleted entities, both handled at read time.
type Concept struct {
	Id          ID
	Name        string
	BlogPostIds []ID // Blog posts tagged under this concept
	RelatedIds  []ID // Directed edges to related concepts, not necessarily symmetric
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// BlogPost represents a content entity tagged under one or more concepts.
type BlogPost struct {
	Id         ID
	Title      string
	Excerpt    string // Optional short summary; empty when absent
	Content    string
	ConceptIds []ID        // Concepts this post is tagged under
	RelatedIds []ID        // Directed edges to related posts
	Vector     []float32   // Embedding for semantic search; nil until computed
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// HasVector reports whether the post has a computed embedding.
func (b *BlogPost) HasVector() bool {
	return len(b.Vector) > 0
}

// GraphNode is the view-model for a single node in an assembled graph.
type GraphNode struct {
	Id    ID       `json:"id"`
	Title string   `json:"title"`
	Type  NodeType `json:"type"`
}

// GraphLink is a directed edge between two nodes of an assembled graph.
// The source owns the edge.
type GraphLink struct {
	Source ID `json:"source"`
	Target ID `json:"target"`
}

// Graph is an assembled node/link view. Node ids are unique, and every
// link references nodes present in the same node set.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// SearchHit is a single ranked result of a semantic search.
type SearchHit struct {
	Id      ID       `json:"id"`
	Type    NodeType `json:"type"`
	Title   string   `json:"title"`
	Snippet string   `json:"snippet"`
	Score   float32  `json:"score"`
}

// SearchResponse is the full response of a semantic search.
type SearchResponse struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}
