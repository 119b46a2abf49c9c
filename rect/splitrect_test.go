package rect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskNoIntersection(t *testing.T) {
	sr := Of(New(10, 10, 20, 20))
	res := sr.MaskWith(New(30, 30, 40, 40))

	bounds, ok := res.Bounds()
	assert.True(t, ok)
	assert.Equal(t, New(10, 10, 20, 20), bounds)
	assert.Equal(t, sr, res)
}

func TestMaskFullCover(t *testing.T) {
	sr := Of(New(100, 100, 150, 150))
	res := sr.MaskWith(New(50, 50, 200, 200))

	assert.True(t, res.IsEmpty())
	_, ok := res.Bounds()
	assert.False(t, ok)
}

func TestMaskSameSize(t *testing.T) {
	r := New(100, 100, 150, 150)
	sr := Of(r)
	res := sr.MaskWith(r)

	assert.True(t, res.IsEmpty())
}

func TestMaskSameSizeMultiMember(t *testing.T) {
	bound := New(100, 100, 200, 200)
	sr := SplitRect{
		New(100, 100, 200, 120),
		New(150, 120, 200, 200),
		New(100, 120, 150, 200),
	}

	res := sr.MaskWith(bound)
	assert.True(t, res.IsEmpty())
}

func TestMaskCenter(t *testing.T) {
	r := New(100, 100, 200, 200)
	sr := Of(r)
	res := sr.MaskWith(New(120, 130, 140, 150))

	expected := SplitRect{
		New(100, 100, 120, 150),
		New(120, 100, 200, 130),
		New(140, 130, 200, 200),
		New(100, 150, 140, 200),
	}

	bounds, ok := res.Bounds()
	assert.True(t, ok)
	assert.Equal(t, r, bounds)
	assert.Equal(t, expected, res)
}

func TestMaskCenterHoriz(t *testing.T) {
	r := New(100, 100, 200, 200)
	sr := Of(r)
	res := sr.MaskWith(New(20, 130, 240, 150))

	expected := SplitRect{
		New(100, 100, 200, 130),
		New(100, 150, 200, 200),
	}

	assert.Equal(t, expected, res)
}

func TestMaskEdges(t *testing.T) {
	r := New(100, 100, 200, 200)

	cases := []struct {
		name     string
		mask     Rect
		expected Rect
	}{
		{"top", New(50, 50, 250, 150), New(100, 150, 200, 200)},
		{"left", New(50, 50, 150, 250), New(150, 100, 200, 200)},
		{"right", New(150, 50, 250, 250), New(100, 100, 150, 200)},
		{"bottom", New(50, 150, 250, 250), New(100, 100, 200, 150)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sr := Of(r)
			res := sr.MaskWith(c.mask)
			bounds, ok := res.Bounds()
			assert.True(t, ok)
			assert.Equal(t, c.expected, bounds)
			assert.Equal(t, SplitRect{c.expected}, res)
		})
	}
}

func TestMaskWithEmptyIsIdentity(t *testing.T) {
	sr := SplitRect{New(0, 0, 10, 10), New(20, 20, 30, 30)}
	res := sr.MaskWith(Rect{})

	assert.Equal(t, sr, res)
}

func TestMaskBoundsSubsetLaw(t *testing.T) {
	sr := Of(New(100, 100, 200, 200))
	masked := sr.MaskWith(New(120, 130, 140, 150))

	sb, _ := sr.Bounds()
	mb, ok := masked.Bounds()
	assert.True(t, ok)
	assert.True(t, sb.Covers(mb))
}
