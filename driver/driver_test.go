package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hintmgrd/compositor"
	"hintmgrd/hint"
	"hintmgrd/rect"
)

func TestDriverModeCyclesAndWraps(t *testing.T) {
	m := ModeNormal
	m = m.CycleNext()
	assert.Equal(t, ModeA2, m)
	m = m.CycleNext()
	assert.Equal(t, ModeZeroWaveform, m)
	m = m.CycleNext()
	assert.Equal(t, ModeNormal, m)
}

func TestDitherModeCyclesAndWraps(t *testing.T) {
	m := DitherBayer
	m = m.CycleNext()
	assert.Equal(t, DitherBlueNoise16, m)
	m = m.CycleNext()
	assert.Equal(t, DitherBlueNoise32, m)
	m = m.CycleNext()
	assert.Equal(t, DitherBayer, m)
}

func TestNullSinkRejectsDirectZeroWaveform(t *testing.T) {
	n := NewNull()
	err := n.SetDriverMode(ModeZeroWaveform)
	assert.ErrorIs(t, err, ErrZeroWaveformUnsupported)
}

func TestNullSinkRoundTripsProperties(t *testing.T) {
	n := NewNull()

	require.NoError(t, n.SetDriverMode(ModeA2))
	got, err := n.DriverMode()
	require.NoError(t, err)
	assert.Equal(t, ModeA2, got)

	require.NoError(t, n.SetDitherMode(DitherBlueNoise32))
	gotD, err := n.DitherMode()
	require.NoError(t, err)
	assert.Equal(t, DitherBlueNoise32, gotD)

	require.NoError(t, n.SetRedrawDelay(250))
	gotR, err := n.RedrawDelay()
	require.NoError(t, err)
	assert.Equal(t, uint16(250), gotR)
}

func TestNullSinkUploadHintsNeverErrors(t *testing.T) {
	n := NewNull()
	computed := compositor.ComputedHints{
		DefaultHint: hint.New(hint.Y4, hint.Threshold, false),
		RectHints: []compositor.RectHint{
			{Rect: rect.New(0, 0, 100, 100), Hint: hint.New(hint.Y2, hint.Dither, true)},
		},
	}
	assert.NoError(t, n.UploadHints(computed))
	assert.NoError(t, n.GlobalRefresh())
}
