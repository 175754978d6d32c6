package graph

import (
	"fmt"

	"github.com/poiesic/conceptmap/core"
)

// RootVariant selects the shape of the root graph.
type RootVariant int

const (
	// RootConceptsOnly renders the root view with concept nodes and
	// concept-to-concept edges only.
	RootConceptsOnly RootVariant = iota + 1
	// RootFull renders the root view with concept and blog nodes and all
	// three edge kinds.
	RootFull
)

// String returns the configuration name of the variant.
func (v RootVariant) String() string {
	switch v {
	case RootConceptsOnly:
		return "concepts"
	case RootFull:
		return "full"
	default:
		return fmt.Sprintf("RootVariant(%d)", int(v))
	}
}

// ParseRootVariant parses a configuration string ("concepts" or "full").
func ParseRootVariant(s string) (RootVariant, error) {
	switch s {
	case "concepts":
		return RootConceptsOnly, nil
	case "full":
		return RootFull, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRootVariant, s)
	}
}

// ConceptsOnlyRoot assembles the concepts-only root view: one node per
// concept and a directed link for every resolvable concept-to-concept
// relation.
func ConceptsOnlyRoot(concepts []*core.Concept) *core.Graph {
	b := newBuilder()
	for _, c := range concepts {
		b.addConceptNode(c)
	}
	for _, c := range concepts {
		for _, rid := range c.RelatedIds {
			b.addLink(c.Id, rid)
		}
	}
	return b.build()
}

// FullRoot assembles the full root view: one node per concept and per blog
// post, with concept-to-concept, concept-to-blog, and blog-to-blog edges.
func FullRoot(concepts []*core.Concept, blogs []*core.BlogPost) *core.Graph {
	b := newBuilder()
	for _, c := range concepts {
		b.addConceptNode(c)
	}
	for _, post := range blogs {
		b.addBlogNode(post)
	}
	for _, c := range concepts {
		for _, rid := range c.RelatedIds {
			b.addLink(c.Id, rid)
		}
		for _, bid := range c.BlogPostIds {
			b.addLink(c.Id, bid)
		}
	}
	for _, post := range blogs {
		for _, rid := range post.RelatedIds {
			b.addLink(post.Id, rid)
		}
	}
	return b.build()
}

// Drilldown assembles the view for a single concept: the center concept,
// its resolved blogs, its resolved related concepts, and a link from the
// center to each of them. Unresolvable relation ids have already been
// dropped by the batch fetch, so they appear in neither set.
func Drilldown(center *core.Concept, blogs []*core.BlogPost, related []*core.Concept) *core.Graph {
	b := newBuilder()
	b.addConceptNode(center)
	for _, post := range blogs {
		b.addBlogNode(post)
		b.addLink(center.Id, post.Id)
	}
	for _, c := range related {
		b.addConceptNode(c)
		b.addLink(center.Id, c.Id)
	}
	return b.build()
}

// Expansion assembles the view for a single blog post: the center post,
// its resolved related posts, and a link from the center to each.
func Expansion(center *core.BlogPost, related []*core.BlogPost) *core.Graph {
	b := newBuilder()
	b.addBlogNode(center)
	for _, post := range related {
		b.addBlogNode(post)
		b.addLink(center.Id, post.Id)
	}
	return b.build()
}

// builder accumulates nodes and links with id-level deduplication.
// Links are buffered and resolved at build time so that only links whose
// endpoints both ended up in the node set are emitted.
type builder struct {
	nodes     []core.GraphNode
	links     []core.GraphLink
	seenNodes map[core.ID]bool
	seenLinks map[core.GraphLink]bool
}

func newBuilder() *builder {
	return &builder{
		seenNodes: make(map[core.ID]bool),
		seenLinks: make(map[core.GraphLink]bool),
	}
}

// addConceptNode adds a node for a concept, keeping the first occurrence
// when the same id is discovered via multiple relation paths.
func (b *builder) addConceptNode(c *core.Concept) {
	b.addNode(core.GraphNode{Id: c.Id, Title: c.Name, Type: core.NodeTypeConcept})
}

// addBlogNode adds a node for a blog post.
func (b *builder) addBlogNode(post *core.BlogPost) {
	b.addNode(core.GraphNode{Id: post.Id, Title: post.Title, Type: core.NodeTypeBlog})
}

func (b *builder) addNode(node core.GraphNode) {
	if b.seenNodes[node.Id] {
		return
	}
	b.seenNodes[node.Id] = true
	b.nodes = append(b.nodes, node)
}

func (b *builder) addLink(source, target core.ID) {
	link := core.GraphLink{Source: source, Target: target}
	if b.seenLinks[link] {
		return
	}
	b.seenLinks[link] = true
	b.links = append(b.links, link)
}

// build emits the assembled graph, dropping links with an endpoint that
// never became a node (a dangling relation reference).
func (b *builder) build() *core.Graph {
	links := make([]core.GraphLink, 0, len(b.links))
	for _, link := range b.links {
		if b.seenNodes[link.Source] && b.seenNodes[link.Target] {
			links = append(links, link)
		}
	}
	nodes := b.nodes
	if nodes == nil {
		// Marshal as [] rather than null
		nodes = []core.GraphNode{}
	}
	return &core.Graph{
		Nodes: nodes,
		Links: links,
	}
}
