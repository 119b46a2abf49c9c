// Package hint implements the packed rendering-hint triple the driver
// consumes: bit depth, conversion mode, and the fast-redraw flag.
package hint

import (
	"fmt"
	"strings"
)

// BitDepth is the number of bits per pixel the driver should render
// a hinted region at.
type BitDepth uint8

const (
	Y1 BitDepth = iota
	Y2
	Y4
)

func (b BitDepth) String() string {
	switch b {
	case Y1:
		return "Y1"
	case Y2:
		return "Y2"
	case Y4:
		return "Y4"
	default:
		return "Y?"
	}
}

// ConvertMode selects how RGB values are reduced to the target bit
// depth.
type ConvertMode uint8

const (
	Threshold ConvertMode = iota
	Dither
)

const (
	bitDepthShift = 4
	bitDepthMask  = 0x3 << bitDepthShift
	convertShift  = 6
	convertMask   = 0x1 << convertShift
	redrawShift   = 7
	redrawMask    = 0x1 << redrawShift
	reservedMask  = 0x0F
)

// Hint is the packed 8-bit rendering hint: bits 4-5 are the bit depth,
// bit 6 is the convert mode, bit 7 is the redraw flag, and bits 0-3 are
// reserved and must be zero on parse. Hint is an immutable value type.
type Hint struct {
	repr uint8
}

// New builds a Hint from its three components.
func New(depth BitDepth, convert ConvertMode, redraw bool) Hint {
	var r uint8
	r |= uint8(depth) << bitDepthShift
	r |= uint8(convert) << convertShift
	if redraw {
		r |= 1 << redrawShift
	}
	return Hint{repr: r}
}

// BitDepth returns the hint's bit depth.
func (h Hint) BitDepth() BitDepth {
	return BitDepth((h.repr & bitDepthMask) >> bitDepthShift)
}

// ConvertMode returns the hint's conversion mode.
func (h Hint) ConvertMode() ConvertMode {
	return ConvertMode((h.repr & convertMask) >> convertShift)
}

// Redraw reports whether the two-pass fast-redraw flag is set.
func (h Hint) Redraw() bool {
	return h.repr&redrawMask != 0
}

// Byte returns the packed 8-bit representation, as the kernel driver
// expects it on the wire.
func (h Hint) Byte() uint8 { return h.repr }

// FromByte parses a packed representation, rejecting non-zero
// reserved bits and bit-depth values outside {Y1,Y2,Y4}.
func FromByte(b uint8) (Hint, error) {
	if b&reservedMask != 0 {
		return Hint{}, fmt.Errorf("hint: reserved bits set in %#02x", b)
	}

	depth := BitDepth((b & bitDepthMask) >> bitDepthShift)
	if depth > Y4 {
		return Hint{}, fmt.Errorf("hint: unsupported bit depth %d", depth)
	}

	return Hint{repr: b & (bitDepthMask | convertMask | redrawMask)}, nil
}

// Format renders the hint in its human-readable form:
// "<depth>|<T|D>|<R|r>", e.g. "Y4|D|R".
func (h Hint) Format() string {
	convert := "T"
	if h.ConvertMode() == Dither {
		convert = "D"
	}
	redraw := "r"
	if h.Redraw() {
		redraw = "R"
	}
	return fmt.Sprintf("%s|%s|%s", h.BitDepth(), convert, redraw)
}

func (h Hint) String() string { return h.Format() }

// Parse reads the human-readable form "<depth>[|T|D][|R|r]". Depth is
// mandatory; convert defaults to Threshold and redraw defaults to
// false when omitted. Unknown tokens or a missing depth are rejected.
func Parse(s string) (Hint, error) {
	parts := strings.Split(s, "|")
	if len(parts) == 0 || parts[0] == "" {
		return Hint{}, fmt.Errorf("hint: missing bit depth in %q", s)
	}

	depth, err := parseDepth(parts[0])
	if err != nil {
		return Hint{}, err
	}

	convert := Threshold
	redraw := false

	for _, tok := range parts[1:] {
		switch tok {
		case "T":
			convert = Threshold
		case "D":
			convert = Dither
		case "R":
			redraw = true
		case "r":
			redraw = false
		default:
			return Hint{}, fmt.Errorf("hint: unrecognized token %q in %q", tok, s)
		}
	}

	return New(depth, convert, redraw), nil
}

func parseDepth(s string) (BitDepth, error) {
	switch s {
	case "Y1":
		return Y1, nil
	case "Y2":
		return Y2, nil
	case "Y4":
		return Y4, nil
	default:
		return 0, fmt.Errorf("hint: unrecognized bit depth %q", s)
	}
}
