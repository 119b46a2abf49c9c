// Package ztree implements the Z-ordered occlusion-resolving spatial
// index the compositor uses to turn a stream of window surfaces into
// the smallest correct set of non-overlapping, hinted rectangles.
package ztree

import (
	"sort"

	"hintmgrd/rect"
)

// ZSurface is one surface the caller wants represented in the tree: a
// Z-index, an opaque reference (the owning window's key), and the area
// it occupies.
type ZSurface struct {
	ZIndex    int32
	Reference string
	Area      rect.Rect
}

// zLeaf is the tree's internal bookkeeping for one inserted surface:
// its area, possibly already split by masking against higher layers.
type zLeaf struct {
	reference string
	area      rect.SplitRect
}

// ZTree buckets leaves by Z-index, higher index on top. Insert and
// Flatten together guarantee at most one output rectangle per
// surface, equal to the bounding box of its visible region.
type ZTree struct {
	buckets map[int32][]zLeaf
}

// New returns an empty ZTree.
func New() *ZTree {
	return &ZTree{buckets: make(map[int32][]zLeaf)}
}

func (t *ZTree) sortedKeys() []int32 {
	keys := make([]int32, 0, len(t.buckets))
	for z := range t.buckets {
		keys = append(keys, z)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Insert attempts to add surface to the tree. It first masks the
// newcomer against every higher layer's bounding box; if nothing
// remains visible it returns false and leaves the tree unchanged. It
// then masks every layer at or below the newcomer's Z-index against
// the newcomer's (now-final) bounding box, pruning leaves and buckets
// left empty, before appending the newcomer.
func (t *ZTree) Insert(s ZSurface) bool {
	newLeaf := zLeaf{reference: s.Reference, area: rect.Of(s.Area)}
	if newLeaf.area.IsEmpty() {
		return false
	}

	keys := t.sortedKeys()

	for _, z := range keys {
		if z <= s.ZIndex {
			continue
		}
		for _, upper := range t.buckets[z] {
			bounds, ok := upper.area.Bounds()
			if !ok {
				continue
			}
			newLeaf.area = newLeaf.area.MaskWith(bounds)
			if newLeaf.area.IsEmpty() {
				return false
			}
		}
	}

	newBounds, ok := newLeaf.area.Bounds()
	if !ok {
		return false
	}

	for _, z := range keys {
		if z > s.ZIndex {
			continue
		}
		kept := t.buckets[z][:0]
		for _, lower := range t.buckets[z] {
			lower.area = lower.area.MaskWith(newBounds)
			if !lower.area.IsEmpty() {
				kept = append(kept, lower)
			}
		}
		if len(kept) == 0 {
			delete(t.buckets, z)
		} else {
			t.buckets[z] = kept
		}
	}

	t.buckets[s.ZIndex] = append(t.buckets[s.ZIndex], newLeaf)
	return true
}

// Flatten consumes the tree and returns, for every leaf, exactly one
// ZSurface whose Area is the bounding box of the leaf's visible
// SplitRect. Buckets are emitted in ascending Z-index order; within a
// bucket, leaves are emitted in insertion order.
func (t *ZTree) Flatten() []ZSurface {
	var out []ZSurface
	for _, z := range t.sortedKeys() {
		for _, l := range t.buckets[z] {
			bounds, ok := l.area.Bounds()
			if !ok {
				continue
			}
			out = append(out, ZSurface{ZIndex: z, Reference: l.reference, Area: bounds})
		}
	}
	return out
}
