package style

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cssterm/cssterm/internal/hash"
)

// CacheKey identifies a computed style result: the element's own
// fingerprint, the stylesheet version it was matched against, and a hash
// of the inherited context it cascaded from. Any change to any of the
// three invalidates the entry.
type CacheKey struct {
	ElementFingerprint uint64
	StylesheetVersion  uint64
	InheritedHash      uint64
}

// Cache memoizes ComputeStyle results across frames, since most elements
// in a tree are untouched between frames and their matched rule set and
// inherited context are unchanged.
type Cache struct {
	lru *lru.Cache[CacheKey, ComputedStyle]
}

// NewCache creates a Cache holding up to capacity entries, evicting least
// recently used beyond that.
func NewCache(capacity int) *Cache {
	c, _ := lru.New[CacheKey, ComputedStyle](capacity)
	return &Cache{lru: c}
}

// Get returns the cached style for key, if present.
func (c *Cache) Get(key CacheKey) (ComputedStyle, bool) {
	return c.lru.Get(key)
}

// Put stores a computed style under key.
func (c *Cache) Put(key CacheKey, cs ComputedStyle) {
	c.lru.Add(key, cs)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every cached entry, used on theme or viewport changes that
// invalidate every computed style at once.
func (c *Cache) Purge() { c.lru.Purge() }

// HashInherited fingerprints the subset of a ComputedStyle that
// participates in inheritance, for use as the InheritedHash cache key
// component.
func HashInherited(parent *ComputedStyle) uint64 {
	if parent == nil {
		return 0
	}
	h := hash.New().
		Uint64(uint64(parent.FontWeight)).
		Uint64(uint64(parent.TextAlign)).
		Bool(parent.Italic).
		Bool(parent.Underline).
		String(parent.Color.String())
	h = hash.UnorderedMap(h, parent.CustomProperties)
	return h.Sum()
}
