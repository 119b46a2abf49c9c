package rect

// SplitRect is an ordered set of non-empty, pairwise non-overlapping
// rectangles representing a single logical region whose interior has
// been partially masked by higher layers.
type SplitRect []Rect

// Of wraps a single rectangle as a one-member SplitRect. An empty
// input yields an empty SplitRect, not a SplitRect containing an
// empty member.
func Of(r Rect) SplitRect {
	if r.Empty() {
		return nil
	}
	return SplitRect{r}
}

// IsEmpty reports whether the split rectangle has no members.
func (s SplitRect) IsEmpty() bool {
	return len(s) == 0
}

// Bounds returns the smallest Rect containing every member of s, and
// false if s has no members.
func (s SplitRect) Bounds() (Rect, bool) {
	if s.IsEmpty() {
		return Rect{}, false
	}

	b := Rect{X1: s[0].X1, Y1: s[0].Y1, X2: s[0].X2, Y2: s[0].Y2}
	for _, r := range s[1:] {
		b.X1 = min32(b.X1, r.X1)
		b.Y1 = min32(b.Y1, r.Y1)
		b.X2 = max32(b.X2, r.X2)
		b.Y2 = max32(b.Y2, r.Y2)
	}
	return b, true
}

// maskRect masks a single rectangle with another, returning up to four
// residual rectangles — one per side of the intersection — with any
// non-positive-area residuals dropped.
func maskRect(r Rect, mask Rect) SplitRect {
	inter, ok := r.Intersection(mask)
	if !ok {
		return SplitRect{r}
	}

	candidates := [4]Rect{
		New(r.X1, r.Y1, inter.X1, inter.Y2), // left
		New(inter.X1, r.Y1, r.X2, inter.Y1), // top
		New(inter.X2, inter.Y1, r.X2, r.Y2), // right
		New(r.X1, inter.Y2, inter.X2, r.Y2), // bottom
	}

	var out SplitRect
	for _, c := range candidates {
		if !c.Empty() {
			out = append(out, c)
		}
	}
	return out
}

// MaskWith returns a new SplitRect containing the points of s not
// covered by mask. It preserves the non-overlap invariant and is the
// compositor's core masking primitive.
func (s SplitRect) MaskWith(mask Rect) SplitRect {
	if mask.Empty() {
		return s
	}

	var out SplitRect
	for _, r := range s {
		out = append(out, maskRect(r, mask)...)
	}
	return out
}
