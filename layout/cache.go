package layout

import lru "github.com/hashicorp/golang-lru/v2"

// CacheKey identifies a memoized layout result: the element subtree's
// fingerprint plus the available size it was laid out against. A cache
// hit returns a ready LaidElement tree without re-running measurement.
type CacheKey struct {
	SubtreeFingerprint uint64
	AvailableWidth     int
	AvailableHeight    int
}

// Cache memoizes LaidElement trees across frames for subtrees whose
// fingerprint and available size are unchanged from the previous frame.
type Cache struct {
	lru *lru.Cache[CacheKey, *LaidElement]
}

// NewCache creates a Cache holding up to capacity entries.
func NewCache(capacity int) *Cache {
	c, _ := lru.New[CacheKey, *LaidElement](capacity)
	return &Cache{lru: c}
}

func (c *Cache) Get(key CacheKey) (*LaidElement, bool) { return c.lru.Get(key) }
func (c *Cache) Put(key CacheKey, le *LaidElement)      { c.lru.Add(key, le) }
func (c *Cache) Purge()                                 { c.lru.Purge() }
func (c *Cache) Len() int                               { return c.lru.Len() }
