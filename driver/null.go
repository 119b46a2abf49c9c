package driver

import (
	"log"

	"hintmgrd/compositor"
)

var _ Sink = (*Null)(nil)

// Null is a Sink that only logs; it backs --dry-run and the test suite
// in place of a real rockchip_ebc device.
type Null struct {
	driverMode  DriverMode
	ditherMode  DitherMode
	redrawDelay uint16
}

// NewNull returns a Null sink with driver defaults.
func NewNull() *Null {
	return &Null{driverMode: ModeNormal, ditherMode: DitherBayer, redrawDelay: 0}
}

func (n *Null) UploadHints(hints compositor.ComputedHints) error {
	log.Printf("driver(null): upload %d rect hint(s), default=%s\n", len(hints.RectHints), hints.DefaultHint)
	return nil
}

func (n *Null) GlobalRefresh() error {
	log.Println("driver(null): global refresh")
	return nil
}

func (n *Null) SetOffScreen(path string) error {
	log.Printf("driver(null): off-screen override <- %s\n", path)
	return nil
}

func (n *Null) DriverMode() (DriverMode, error) { return n.driverMode, nil }
func (n *Null) SetDriverMode(m DriverMode) error {
	if m == ModeZeroWaveform {
		return ErrZeroWaveformUnsupported
	}
	n.driverMode = m
	return nil
}

func (n *Null) DitherMode() (DitherMode, error)  { return n.ditherMode, nil }
func (n *Null) SetDitherMode(m DitherMode) error { n.ditherMode = m; return nil }

func (n *Null) RedrawDelay() (uint16, error) { return n.redrawDelay, nil }
func (n *Null) SetRedrawDelay(d uint16) error {
	n.redrawDelay = d
	return nil
}
