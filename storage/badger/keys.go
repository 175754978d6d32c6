package badger

import (
	"fmt"

	"github.com/poiesic/conceptmap/core"
)

// Key prefixes for different data types. Prefixes are disjoint so full
// prefix scans never pick up keys of another kind.
const (
	conceptRecordPrefix = "conrec"
	conceptNamePrefix   = "conname"
	blogRecordPrefix    = "blgrec"
)

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptRecordPrefix, id))
}

// makeConceptNameKey generates a key for the concept name index.
func makeConceptNameKey(name string) []byte {
	return []byte(conceptNamePrefix + ":" + name)
}

// makeBlogKey generates a key for a blog post by ID.
func makeBlogKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", blogRecordPrefix, id))
}
