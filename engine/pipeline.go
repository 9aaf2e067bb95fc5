package engine

import (
	"sort"

	"github.com/cssterm/cssterm/element"
	"github.com/cssterm/cssterm/internal/errs"
	"github.com/cssterm/cssterm/internal/hash"
	"github.com/cssterm/cssterm/layout"
	"github.com/cssterm/cssterm/render"
	"github.com/cssterm/cssterm/style"
)

// render runs one full pass: restyle, relayout, rasterize, and flush the
// screen. full forces the differ to repaint every cell.
func (e *Engine) render(full bool) error {
	root := e.rootFn()
	if err := element.Validate(root); err != nil {
		if e.log != nil {
			e.log.Warn().Err(err).Msg("host produced an ill-formed element tree, keeping the previous frame")
		}
		return nil
	}

	laid := e.layoutRoot(root)
	e.lastLaid = laid
	e.ancestors = buildAncestors(laid, nil, map[string][]string{})

	e.screen.Clear()
	(render.Rasterizer{}).Paint(e.screen.Back, laid)

	if full {
		e.screen.ForceFullRedraw()
	}
	if _, err := e.screen.Flush(); err != nil {
		return &errs.IoError{Op: "flush", Err: err}
	}
	return nil
}

// layoutRoot runs layout.Layout, memoizing the whole result tree in the
// engine's layout cache keyed on the root's own fingerprint folded
// together with the stylesheet version and every pseudo-class flag, so a
// hover/focus change (which leaves the element tree's own fingerprint
// untouched) still busts the cache the way a structural edit would.
// layout.Layout has no subtree-level cache hook of its own, so this
// caches at root granularity rather than per subtree.
func (e *Engine) layoutRoot(root *element.Element) *layout.LaidElement {
	ids := make([]string, 0, len(e.pseudoState))
	for id := range e.pseudoState {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	d := hash.New().Uint64(root.Fingerprint()).Uint64(e.sheet.Version)
	for _, id := range ids {
		ps := e.pseudoState[id]
		d = d.String(id).Bool(ps.Hover).Bool(ps.Focus).Bool(ps.Active).Bool(ps.Disabled)
	}
	key := layout.CacheKey{SubtreeFingerprint: d.Sum(), AvailableWidth: e.viewport.W, AvailableHeight: e.viewport.H}

	if laid, ok := e.layoutCache.Get(key); ok {
		return laid
	}
	laid := layout.Layout(root, e.buildStyleLookup(root), e.viewport)
	e.layoutCache.Put(key, laid)
	return laid
}

// buildContextTree builds the engine's own record of each element's
// position/state context, in lockstep with the element tree, so every
// element (not just the root) has a reachable *style.NodeContext for
// MatchRules.
func buildContextTree(el *element.Element, parent *style.NodeContext, index, siblingCount int, pseudo map[string]style.PseudoState, out map[*element.Element]*style.NodeContext, parentOf map[*element.Element]*element.Element) *style.NodeContext {
	if el == nil {
		return nil
	}
	ctx := &style.NodeContext{El: el, Parent: parent, Index: index, SiblingCount: siblingCount}
	if el.ID != "" {
		if ps, ok := pseudo[el.ID]; ok {
			ctx.Hover, ctx.Focus, ctx.Active, ctx.Disabled = ps.Hover, ps.Focus, ps.Active, ps.Disabled
		}
	}
	if _, disabled := el.Attr("disabled"); disabled {
		ctx.Disabled = true
	}
	out[el] = ctx

	var prev *style.NodeContext
	for i, c := range el.Children {
		parentOf[c] = el
		cc := buildContextTree(c, ctx, i+1, len(el.Children), pseudo, out, parentOf)
		cc.PrevSibling = prev
		prev = cc
	}
	return ctx
}

// buildStyleLookup returns a layout.StyleLookup that cascades each
// element against its NodeContext, memoizing results in the engine's
// style cache keyed by fingerprint/stylesheet version/inherited hash so
// untouched subtrees skip ComputeStyle entirely.
func (e *Engine) buildStyleLookup(root *element.Element) layout.StyleLookup {
	contextByEl := make(map[*element.Element]*style.NodeContext)
	parentOf := make(map[*element.Element]*element.Element)
	buildContextTree(root, nil, 1, 1, e.pseudoState, contextByEl, parentOf)

	computed := make(map[*element.Element]style.ComputedStyle)

	var lookup style.StyleLookup
	lookup = func(el *element.Element) style.ComputedStyle {
		if cs, ok := computed[el]; ok {
			return cs
		}

		var inherited *style.ComputedStyle
		if parent, ok := parentOf[el]; ok {
			pcs := lookup(parent)
			inherited = &pcs
		} else {
			inherited = e.rootInheritedStyle()
		}

		elCtx := contextByEl[el]
		rules := style.MatchRules(e.sheet, elCtx, e.viewport.W, e.themeRes.Mode)
		inlineStyle, _ := el.Attr("style")

		key := style.CacheKey{
			ElementFingerprint: el.Fingerprint(),
			StylesheetVersion:  e.sheet.Version,
			InheritedHash:      style.HashInherited(inherited),
		}
		if cs, ok := e.styleCache.Get(key); ok {
			computed[el] = cs
			return cs
		}

		cs := style.ComputeStyle(rules, inherited, inlineStyle)
		e.styleCache.Put(key, cs)
		computed[el] = cs
		return cs
	}
	return lookup
}

// rootInheritedStyle seeds the synthetic style the document root
// inherits from: the theme's foreground/background semantic roles, plus
// every palette token and semantic role as a custom property so
// var(--token) resolves anywhere in the tree.
func (e *Engine) rootInheritedStyle() *style.ComputedStyle {
	base := style.DefaultComputedStyle()
	if c, ok := e.themeRes.Semantic("foreground"); ok {
		base.Color = c
	}
	if c, ok := e.themeRes.Semantic("background"); ok {
		base.Background = c
	}
	for k, v := range e.themeRes.CustomProperties() {
		base.CustomProperties[k] = v
	}
	return &base
}

// buildAncestors walks a laid tree recording, for every element id, its
// ancestor ids innermost-first — exactly the order Router.Dispatch wants
// for bubbling.
func buildAncestors(le *layout.LaidElement, chain []string, out map[string][]string) map[string][]string {
	if le == nil {
		return out
	}
	if le.El != nil && le.El.ID != "" {
		cp := make([]string, len(chain))
		for i, id := range chain {
			cp[len(chain)-1-i] = id
		}
		out[le.El.ID] = cp
		chain = append(chain, le.El.ID)
	}
	for _, c := range le.Children {
		buildAncestors(c, chain, out)
	}
	return out
}
