package rect

import "testing"

import "github.com/stretchr/testify/assert"

func TestIntersectsAndCovers(t *testing.T) {
	a := New(0, 0, 100, 100)
	b := New(50, 50, 150, 150)
	c := New(200, 200, 300, 300)

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))

	assert.True(t, a.Covers(New(10, 10, 20, 20)))
	assert.False(t, a.Covers(b))
}

func TestIntersection(t *testing.T) {
	a := New(0, 0, 100, 100)
	b := New(50, 50, 150, 150)

	inter, ok := a.Intersection(b)
	assert.True(t, ok)
	assert.Equal(t, New(50, 50, 100, 100), inter)

	_, ok = a.Intersection(New(200, 200, 300, 300))
	assert.False(t, ok)
}

func TestClipToScreen(t *testing.T) {
	r := New(1000, 1000, 2000, 1600)
	clipped, ok := r.ClipToScreen(1872, 1404)
	assert.True(t, ok)
	assert.Equal(t, New(1000, 1000, 1872, 1404), clipped)
}

func TestValidEmpty(t *testing.T) {
	assert.True(t, New(0, 0, 10, 10).Valid())
	assert.False(t, New(10, 0, 0, 10).Valid())
	assert.True(t, New(0, 0, 0, 10).Empty())
	assert.False(t, New(0, 0, 1, 10).Empty())
}
