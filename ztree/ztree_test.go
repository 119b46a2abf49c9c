package ztree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"hintmgrd/rect"
)

func TestEmptyTreeFlattensEmpty(t *testing.T) {
	tr := New()
	assert.Empty(t, tr.Flatten())
}

func TestOneSurface(t *testing.T) {
	tr := New()
	s := ZSurface{ZIndex: 0, Reference: "test_surface", Area: rect.New(0, 0, 100, 100)}

	assert.True(t, tr.Insert(s))
	assert.Equal(t, []ZSurface{s}, tr.Flatten())
}

func TestOneLayerNoOverlap(t *testing.T) {
	tr := New()
	surfaces := []ZSurface{
		{ZIndex: 0, Reference: "surface1", Area: rect.New(0, 0, 100, 100)},
		{ZIndex: 0, Reference: "surface2", Area: rect.New(100, 0, 200, 200)},
		{ZIndex: 0, Reference: "surface3", Area: rect.New(0, 100, 100, 200)},
	}

	for _, s := range surfaces {
		assert.True(t, tr.Insert(s))
	}

	assert.Equal(t, surfaces, tr.Flatten())
}

func TestHiddenSurfaceNotKeptAfterInsertAbove(t *testing.T) {
	tr := New()
	lower := ZSurface{ZIndex: 0, Reference: "lower", Area: rect.New(10, 10, 20, 20)}
	upper := ZSurface{ZIndex: 1, Reference: "upper", Area: rect.New(0, 0, 100, 100)}

	assert.True(t, tr.Insert(lower))
	assert.True(t, tr.Insert(upper))

	assert.Equal(t, []ZSurface{upper}, tr.Flatten())
}

func TestHiddenSurfaceRefusedOnInsert(t *testing.T) {
	tr := New()
	lower := ZSurface{ZIndex: 0, Reference: "lower", Area: rect.New(10, 10, 20, 20)}
	upper := ZSurface{ZIndex: 1, Reference: "upper", Area: rect.New(0, 0, 100, 100)}

	assert.True(t, tr.Insert(upper))
	assert.False(t, tr.Insert(lower))

	assert.Equal(t, []ZSurface{upper}, tr.Flatten())
}

func byZIndex(surfaces []ZSurface) []ZSurface {
	out := append([]ZSurface(nil), surfaces...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

func TestMultiLayerNoOverlapOrderIndependent(t *testing.T) {
	surfaces := []ZSurface{
		{ZIndex: 3, Reference: "surface1", Area: rect.New(0, 0, 100, 100)},
		{ZIndex: 1, Reference: "surface2", Area: rect.New(100, 0, 200, 200)},
		{ZIndex: 2, Reference: "surface3", Area: rect.New(0, 100, 100, 200)},
	}

	tr := New()
	for _, s := range surfaces {
		assert.True(t, tr.Insert(s))
	}

	assert.Equal(t, byZIndex(surfaces), tr.Flatten())

	reversed := New()
	for i := len(surfaces) - 1; i >= 0; i-- {
		assert.True(t, reversed.Insert(surfaces[i]))
	}
	assert.Equal(t, byZIndex(surfaces), reversed.Flatten())
}

func TestMultiLayerPartialOverlap(t *testing.T) {
	tr := New()
	surfaces := []ZSurface{
		{ZIndex: 3, Reference: "surface1", Area: rect.New(0, 0, 100, 100)},
		{ZIndex: 1, Reference: "surface2", Area: rect.New(50, 0, 200, 200)},
		{ZIndex: 2, Reference: "surface3", Area: rect.New(0, 100, 150, 200)},
	}

	for _, s := range surfaces {
		tr.Insert(s)
	}

	reducedSurface2 := ZSurface{ZIndex: 1, Reference: "surface2", Area: rect.New(100, 0, 200, 200)}

	expected := []ZSurface{
		reducedSurface2,
		{ZIndex: 2, Reference: "surface3", Area: rect.New(0, 100, 150, 200)},
		{ZIndex: 3, Reference: "surface1", Area: rect.New(0, 0, 100, 100)},
	}

	assert.Equal(t, expected, tr.Flatten())
}

func TestSmallestBoundingBoxReturned(t *testing.T) {
	tr := New()
	surfaces := []ZSurface{
		{ZIndex: 1, Reference: "surface1", Area: rect.New(0, 0, 200, 200)},
		{ZIndex: 2, Reference: "surface2", Area: rect.New(50, 0, 150, 100)},
		{ZIndex: 3, Reference: "surface3", Area: rect.New(0, 100, 200, 200)},
	}

	for _, s := range surfaces {
		tr.Insert(s)
	}

	expected := []ZSurface{
		{ZIndex: 1, Reference: "surface1", Area: rect.New(0, 0, 200, 100)},
		surfaces[1],
		surfaces[2],
	}

	assert.Equal(t, expected, tr.Flatten())
}
