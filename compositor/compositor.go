// Package compositor glues the registry to the ZTree: it turns
// registry state into a minimal, Z-ordered, hinted rectangle list for
// the driver to consume.
package compositor

import (
	"hintmgrd/hint"
	"hintmgrd/rect"
	"hintmgrd/registry"
	"hintmgrd/ztree"
)

// RectHint is one output record: a screen rectangle and the hint the
// driver should apply to every pixel in it.
type RectHint struct {
	Rect rect.Rect
	Hint hint.Hint
}

// ComputedHints is the compositor's pure output: the global default
// hint plus the Z-ordered list of visible rectangles.
type ComputedHints struct {
	DefaultHint hint.Hint
	RectHints   []RectHint
}

// Compositor (the PixelManager) owns the registry and the global
// fallback hint, and reduces the current registry state to
// ComputedHints on demand.
type Compositor struct {
	*registry.Registry

	DefaultHint hint.Hint
	ScreenArea  rect.Rect
}

// New builds a Compositor over a fresh registry.
func New(defaultHint hint.Hint, screenArea rect.Rect) *Compositor {
	return &Compositor{
		Registry:    registry.New(),
		DefaultHint: defaultHint,
		ScreenArea:  screenArea,
	}
}

// ComputeHints builds a fresh ZTree from every visible, on-screen
// window, flattens it, and attaches each resulting rectangle's
// effective hint via the registry's fallback chain. It never mutates
// the registry and is safe to call repeatedly.
func (c *Compositor) ComputeHints() (ComputedHints, error) {
	tree := ztree.New()

	for _, w := range c.Windows() {
		if !w.Data.Visible {
			continue
		}
		area, ok := w.Data.Area.Intersection(c.ScreenArea)
		if !ok {
			continue
		}
		tree.Insert(ztree.ZSurface{
			ZIndex:    w.Data.ZIndex,
			Reference: string(w.UID),
			Area:      area,
		})
	}

	flattened := tree.Flatten()
	rectHints := make([]RectHint, 0, len(flattened))

	for _, s := range flattened {
		h, err := c.WindowHintFallback(registry.WinKey(s.Reference), c.DefaultHint)
		if err != nil {
			return ComputedHints{}, err
		}
		rectHints = append(rectHints, RectHint{Rect: s.Area, Hint: h})
	}

	return ComputedHints{DefaultHint: c.DefaultHint, RectHints: rectHints}, nil
}
