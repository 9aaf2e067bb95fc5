// Package hash provides the 64-bit non-cryptographic fingerprint used to
// key style, layout, and LRU caches throughout the engine.
package hash

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Digest accumulates fields into a single order-sensitive fingerprint.
// Construct one with New; the zero value has no underlying hasher.
type Digest struct {
	d *xxhash.Digest
}

// New returns a fresh Digest seeded deterministically.
func New() Digest {
	return Digest{d: xxhash.New()}
}

// String folds s into the digest.
func (h Digest) String(s string) Digest {
	h.d.WriteString(s)
	h.d.Write([]byte{0}) // separator so "ab"+"c" != "a"+"bc"
	return h
}

// Uint64 folds a raw 64-bit value into the digest (used for nested
// fingerprints, e.g. a child element's fingerprint).
func (h Digest) Uint64(v uint64) Digest {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.d.Write(buf[:])
	return h
}

// Bool folds a boolean flag into the digest.
func (h Digest) Bool(b bool) Digest {
	if b {
		return h.Uint64(1)
	}
	return h.Uint64(0)
}

// Sum returns the accumulated fingerprint.
func (h Digest) Sum() uint64 {
	return h.d.Sum64()
}

// UnorderedStrings folds a set of strings into the digest independent of
// their input order — used for class lists and attribute names, where CSS
// selector matching is order-independent but must still be deterministic.
func UnorderedStrings(h Digest, items []string) Digest {
	if len(items) == 0 {
		return h.Uint64(0)
	}
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	h = h.Uint64(uint64(len(sorted)))
	for _, s := range sorted {
		h = h.String(s)
	}
	return h
}

// UnorderedMap folds a string-to-string map (attributes) independent of
// iteration order.
func UnorderedMap(h Digest, m map[string]string) Digest {
	if len(m) == 0 {
		return h.Uint64(0)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h = h.Uint64(uint64(len(keys)))
	for _, k := range keys {
		h = h.String(k).String(m[k])
	}
	return h
}

// Of hashes a single string in isolation — a convenience for call sites
// that only need a one-shot fingerprint (e.g. a stylesheet's raw source).
func Of(s string) uint64 {
	return xxhash.Sum64String(s)
}
