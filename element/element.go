// Package element implements the semantic element tree: an immutable
// per-frame snapshot the host hands to the engine, plus the
// fingerprinting and dirty-tracking that the style and layout engines
// use to skip unchanged subtrees.
package element

import (
	"fmt"
	"sort"

	"github.com/cssterm/cssterm/internal/hash"
)

// Element is an immutable node in the semantic tree. The host constructs
// a full tree each frame (or on each state change); the engine never
// mutates it.
type Element struct {
	ID         string
	Tag        string
	Classes    []string
	Attributes map[string]string
	Text       string
	HasText    bool
	Children   []*Element

	fingerprint     uint64
	fingerprintOnce bool
}

// New constructs an Element with the given tag. Use the With* helpers to
// fill in the rest; New never panics on its own.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// WithID sets the stable id attribute.
func (e *Element) WithID(id string) *Element {
	e.ID = id
	return e
}

// WithClasses sets the ordered class list.
func (e *Element) WithClasses(classes ...string) *Element {
	e.Classes = classes
	return e
}

// WithAttr sets a single attribute, allocating the map on first use.
func (e *Element) WithAttr(key, value string) *Element {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[key] = value
	return e
}

// WithText sets the leaf text content. Validate rejects an element that
// has both text and children.
func (e *Element) WithText(text string) *Element {
	e.Text = text
	e.HasText = true
	return e
}

// WithChildren sets the ordered child list.
func (e *Element) WithChildren(children ...*Element) *Element {
	e.Children = children
	return e
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.Attributes[key]
	return ok
}

// Attr returns the named attribute and whether it was present.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.Attributes[key]
	return v, ok
}

// HasClass reports whether class is present in the element's class list.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// ErrIllFormed is returned by Validate when an element mixes text and
// children.
type ErrIllFormed struct {
	Tag string
	ID  string
}

func (e *ErrIllFormed) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("element <%s id=%q> has both text and children", e.Tag, e.ID)
	}
	return fmt.Sprintf("element <%s> has both text and children", e.Tag)
}

// Validate recursively checks the tree against the element schema's
// invariants and returns the first violation found, or nil.
func Validate(e *Element) error {
	if e == nil {
		return nil
	}
	if e.HasText && len(e.Children) > 0 {
		return &ErrIllFormed{Tag: e.Tag, ID: e.ID}
	}
	for _, c := range e.Children {
		if err := Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint returns the element's stable 64-bit content fingerprint,
// computed from tag, id, classes, attributes, text, and children
// fingerprints. Classes and attributes are order-independent; children
// are order-sensitive. The result is memoized on the node since Elements
// are immutable once built.
func (e *Element) Fingerprint() uint64 {
	if e == nil {
		return 0
	}
	if e.fingerprintOnce {
		return e.fingerprint
	}
	h := hash.New().String(e.Tag).String(e.ID)
	h = hash.UnorderedStrings(h, e.Classes)
	h = hash.UnorderedMap(h, e.Attributes)
	h = h.Bool(e.HasText).String(e.Text)
	h = h.Uint64(uint64(len(e.Children)))
	for _, c := range e.Children {
		h = h.Uint64(c.Fingerprint())
	}
	e.fingerprint = h.Sum()
	e.fingerprintOnce = true
	return e.fingerprint
}

// Walk calls fn for e and every descendant, depth-first, pre-order.
func Walk(e *Element, fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		Walk(c, fn)
	}
}

// Diff holds the result of comparing two tree snapshots by subtree
// fingerprint: fingerprints present only in the new tree, only in the old
// tree, and, in Changed, the new root's fingerprint when the root's
// aggregate fingerprint differs. Nodes below the root show up only in
// Added/Removed and DirtyPaths, never in Changed.
type Diff struct {
	Added   []uint64
	Removed []uint64
	Changed []uint64

	// DirtyPaths lists, as slash-joined tag paths from the root (e.g.
	// "/div/span"), every node whose aggregate (subtree) fingerprint changed. The style
	// engine needs per-node dirty; the layout engine needs per-subtree
	// dirty, so both sets are exposed.
	DirtyPaths []string
}

// Compare produces the Diff between an old and new root snapshot.
func Compare(oldRoot, newRoot *Element) Diff {
	oldSet := collectFingerprints(oldRoot)
	newSet := collectFingerprints(newRoot)

	var d Diff
	for fp := range newSet {
		if _, ok := oldSet[fp]; !ok {
			d.Added = append(d.Added, fp)
		}
	}
	for fp := range oldSet {
		if _, ok := newSet[fp]; !ok {
			d.Removed = append(d.Removed, fp)
		}
	}
	sort.Slice(d.Added, func(i, j int) bool { return d.Added[i] < d.Added[j] })
	sort.Slice(d.Removed, func(i, j int) bool { return d.Removed[i] < d.Removed[j] })

	d.DirtyPaths = dirtyPaths(oldRoot, newRoot, "")
	for _, p := range d.DirtyPaths {
		_ = p
	}
	if newRoot != nil && (oldRoot == nil || oldRoot.Fingerprint() != newRoot.Fingerprint()) {
		d.Changed = append(d.Changed, newRoot.Fingerprint())
	}
	return d
}

func collectFingerprints(e *Element) map[uint64]struct{} {
	set := make(map[uint64]struct{})
	Walk(e, func(n *Element) {
		set[n.Fingerprint()] = struct{}{}
	})
	return set
}

// dirtyPaths compares two trees position-by-position (children are matched
// by index only; ids and tags are not consulted) and returns the path of
// every node whose subtree fingerprint differs.
func dirtyPaths(oldNode, newNode *Element, path string) []string {
	if newNode == nil {
		return nil
	}
	here := path + "/" + newNode.Tag
	var out []string
	if oldNode == nil || oldNode.Fingerprint() != newNode.Fingerprint() {
		out = append(out, here)
	}
	n := len(newNode.Children)
	if oldNode != nil && len(oldNode.Children) > n {
		n = len(oldNode.Children)
	}
	for i := 0; i < n; i++ {
		var oc, nc *Element
		if oldNode != nil && i < len(oldNode.Children) {
			oc = oldNode.Children[i]
		}
		if i < len(newNode.Children) {
			nc = newNode.Children[i]
		}
		if nc == nil {
			continue
		}
		out = append(out, dirtyPaths(oc, nc, here)...)
	}
	return out
}
