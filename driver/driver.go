// Package driver defines the upload sink the compositor's core hands
// its computed hints to (spec.md §6.2), plus the driver-global
// properties SPEC_FULL.md §4 supplements from the original
// implementation: driver mode, dither mode, redraw delay, and the
// off-screen override image. None of this is part of the compositor
// core — spec.md specifies it only as the sink the core writes to.
package driver

import (
	"errors"
	"fmt"

	"hintmgrd/compositor"
)

// ErrZeroWaveformUnsupported is returned by SetDriverMode when asked to
// set ModeZeroWaveform directly: the original driver only ever enters
// it as a transient internal state, never as a user-requested mode.
var ErrZeroWaveformUnsupported = errors.New("driver: zero-waveform mode cannot be set directly")

// DriverMode selects the kernel driver's overall refresh strategy.
type DriverMode uint8

const (
	ModeNormal DriverMode = iota
	ModeA2
	ModeZeroWaveform
)

func (m DriverMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeA2:
		return "a2"
	case ModeZeroWaveform:
		return "zero-waveform"
	default:
		return "unknown"
	}
}

// CycleNext returns the next mode in round-robin order.
func (m DriverMode) CycleNext() DriverMode {
	return (m + 1) % 3
}

// DitherMode selects the dithering algorithm used when a hint
// requests Dither conversion.
type DitherMode uint8

const (
	DitherBayer DitherMode = iota
	DitherBlueNoise16
	DitherBlueNoise32
)

func (m DitherMode) String() string {
	switch m {
	case DitherBayer:
		return "bayer"
	case DitherBlueNoise16:
		return "blue-noise-16"
	case DitherBlueNoise32:
		return "blue-noise-32"
	default:
		return "unknown"
	}
}

// CycleNext returns the next dither mode in round-robin order.
func (m DitherMode) CycleNext() DitherMode {
	return (m + 1) % 3
}

// OffScreenError distinguishes the ways SetOffScreen can fail, mirroring
// the original implementation's OffScreenError enum.
type OffScreenError struct {
	Stage string // "load", "decode", or "upload"
	Path  string
	Err   error
}

func (e *OffScreenError) Error() string {
	return fmt.Sprintf("driver: off-screen %s failed for %q: %v", e.Stage, e.Path, e.Err)
}

func (e *OffScreenError) Unwrap() error { return e.Err }

// Sink is the contract spec.md §6.2 describes: the core uploads
// ComputedHints to it, expecting idempotent behavior for equivalent
// inputs. The property and diagnostic methods below are the
// supplemented surface of SPEC_FULL.md §4 — driver-global settings
// that live alongside the per-pixel hint upload but aren't part of
// compute_hints().
type Sink interface {
	UploadHints(hints compositor.ComputedHints) error
	GlobalRefresh() error
	SetOffScreen(path string) error

	DriverMode() (DriverMode, error)
	SetDriverMode(mode DriverMode) error
	DitherMode() (DitherMode, error)
	SetDitherMode(mode DitherMode) error
	RedrawDelay() (uint16, error)
	SetRedrawDelay(delay uint16) error
}
