package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// BlockCache memoizes the parse result of a block interior. The key is a
// hash of the normalized block text plus the enclosing attribute context, so
// identical text under different attributes never collides.
//
// Cached node slices are shared, not copied: nodes are immutable after
// parsing, so a hit is indistinguishable from a fresh parse.
type BlockCache struct {
	store *TTLCache[[]*doctree.Node]
}

// NewBlockCache creates a block-parse cache with the given entry TTL.
func NewBlockCache(ttl time.Duration) *BlockCache {
	return &BlockCache{store: NewTTLCache[[]*doctree.Node](ttl)}
}

// Key derives the cache key for a block from its normalized content and the
// serialized enclosing attribute context.
func Key(normalized, context string) string {
	h := sha256.New()
	h.Write([]byte(normalized))
	h.Write([]byte{0}) // separator so content/context boundaries are unambiguous
	h.Write([]byte(context))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached nodes for key, if present.
func (b *BlockCache) Get(key string) ([]*doctree.Node, bool) {
	return b.store.Get(key)
}

// Put stores the parse result for key.
func (b *BlockCache) Put(key string, nodes []*doctree.Node) {
	b.store.Set(key, nodes)
}

// CleanupExpired sweeps expired entries, returning the eviction count.
func (b *BlockCache) CleanupExpired() int {
	return b.store.CleanupExpired()
}

// Len returns the number of cached blocks.
func (b *BlockCache) Len() int {
	return b.store.Len()
}
