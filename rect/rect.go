// Package rect implements the integer rectangle algebra the compositor
// builds on: intersection, coverage, screen clipping, and the SplitRect
// masking primitive.
package rect

// Rect is an axis-aligned rectangle with x1,y1 inclusive and x2,y2
// exclusive. It is empty when either dimension is non-positive.
type Rect struct {
	X1, Y1, X2, Y2 int32
}

// New builds a Rect from its four corners. Callers at the system
// boundary (command decoding) are responsible for rejecting malformed
// corners; New itself does not validate.
func New(x1, y1, x2, y2 int32) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Valid reports whether the rectangle's corners are correctly ordered.
func (r Rect) Valid() bool {
	return r.X1 <= r.X2 && r.Y1 <= r.Y2
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.X2-r.X1 <= 0 || r.Y2-r.Y1 <= 0
}

// Width returns the rectangle's width, which may be zero or negative
// for an invalid rectangle.
func (r Rect) Width() int32 { return r.X2 - r.X1 }

// Height returns the rectangle's height, which may be zero or negative
// for an invalid rectangle.
func (r Rect) Height() int32 { return r.Y2 - r.Y1 }

// Area returns width*height, or 0 if the rectangle is empty.
func (r Rect) Area() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.Width()) * int64(r.Height())
}

// Intersects reports whether the closed-open overlap between r and
// other is non-empty.
func (r Rect) Intersects(other Rect) bool {
	_, ok := r.Intersection(other)
	return ok
}

// Covers reports whether other is fully contained in r.
func (r Rect) Covers(other Rect) bool {
	return r.X1 <= other.X1 && r.Y1 <= other.Y1 &&
		r.X2 >= other.X2 && r.Y2 >= other.Y2
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Intersection returns the overlap of r and other, and false if the
// overlap is empty.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	inter := Rect{
		X1: max32(r.X1, other.X1),
		Y1: max32(r.Y1, other.Y1),
		X2: min32(r.X2, other.X2),
		Y2: min32(r.Y2, other.Y2),
	}

	if inter.Empty() {
		return Rect{}, false
	}
	return inter, true
}

// ClipToScreen returns the intersection of r with a (0,0,w,h) screen
// rectangle, used at the input boundary to discard off-screen area.
func (r Rect) ClipToScreen(w, h int32) (Rect, bool) {
	return r.Intersection(New(0, 0, w, h))
}

// FromXYWH builds a Rect from a top-left corner and dimensions, a
// common shape for window-geometry events from a compositor bridge.
func FromXYWH(x, y, w, h int32) Rect {
	return New(x, y, x+w, y+h)
}
