package element

// Invalidator holds the previous frame's root and produces a Diff against
// each new root handed to it.
type Invalidator struct {
	prev *Element
}

// NewInvalidator returns an Invalidator with no previous frame.
func NewInvalidator() *Invalidator {
	return &Invalidator{}
}

// Accept records newRoot as the current frame and returns how it differs
// from the previously accepted root. The first call against a nil
// Invalidator history treats every node as added.
func (inv *Invalidator) Accept(newRoot *Element) Diff {
	d := Compare(inv.prev, newRoot)
	inv.prev = newRoot
	return d
}

// Previous returns the last accepted root, or nil before the first frame.
func (inv *Invalidator) Previous() *Element {
	return inv.prev
}

// IsDirty reports whether fp appears in diff's Added or Changed sets,
// i.e. whether a node with that fingerprint needs restyling/relayout.
func (d Diff) IsDirty(fp uint64) bool {
	for _, v := range d.Added {
		if v == fp {
			return true
		}
	}
	for _, v := range d.Changed {
		if v == fp {
			return true
		}
	}
	return false
}

// Empty reports whether nothing changed between frames — the no-op case
// where an unmodified tree must produce zero write bytes downstream.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 && len(d.DirtyPaths) == 0
}
