package driver

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"hintmgrd/compositor"
)

var _ Sink = (*EBC)(nil)

// EBC is the real Sink, talking to the rockchip_ebc DRM driver node
// through the ioctls in ioctl.go. Grounded on
// original_source/src/drivers/drm/rockchip_ebc.rs and
// original_source/src/ioctls/drm/rockchip_ebc.rs.
type EBC struct {
	path string
	file *os.File
}

// OpenEBC opens the driver's character device node for ioctl access.
func OpenEBC(devicePath string) (*EBC, error) {
	f, err := os.OpenFile(devicePath, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "driver: opening %s", devicePath)
	}
	return &EBC{path: devicePath, file: f}, nil
}

// Close releases the device node.
func (e *EBC) Close() error {
	return e.file.Close()
}

func (e *EBC) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, e.file.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errors.Wrapf(errno, "driver: ioctl %#x on %s", req, e.path)
	}
	return nil
}

type drmRect struct {
	X1, Y1, X2, Y2 int32
}

type rectHint struct {
	PixelHints uint8
	_padding   [7]byte
	Rect       drmRect
}

type rectHints struct {
	SetDefaultHints uint8
	DefaultHints    uint8
	_padding        [2]byte
	NumRects        uint32
	PtrRectHints    uint64
}

// UploadHints packs ComputedHints into the driver's RECT_HINTS ioctl
// payload. The rect slice is kept alive until after the syscall
// returns so the kernel-visible pointer stays valid.
func (e *EBC) UploadHints(hints compositor.ComputedHints) error {
	packed := make([]rectHint, len(hints.RectHints))
	for i, rh := range hints.RectHints {
		packed[i] = rectHint{
			PixelHints: rh.Hint.Byte(),
			Rect: drmRect{
				X1: rh.Rect.X1, Y1: rh.Rect.Y1,
				X2: rh.Rect.X2, Y2: rh.Rect.Y2,
			},
		}
	}

	payload := rectHints{
		SetDefaultHints: 1,
		DefaultHints:    hints.DefaultHint.Byte(),
		NumRects:        uint32(len(packed)),
	}
	if len(packed) > 0 {
		payload.PtrRectHints = uint64(uintptr(unsafe.Pointer(&packed[0])))
	}

	req := iow(nrRectHints, unsafe.Sizeof(payload))
	err := e.ioctl(req, unsafe.Pointer(&payload))
	runtime.KeepAlive(packed)
	return err
}

type globalRefresh struct {
	Trigger uint8
}

// GlobalRefresh triggers a full-panel refresh, ignoring computed hints.
func (e *EBC) GlobalRefresh() error {
	payload := globalRefresh{Trigger: 1}
	req := iowr(nrGlobalRefresh, unsafe.Sizeof(payload))
	return e.ioctl(req, unsafe.Pointer(&payload))
}

type offScreen struct {
	Info             uint64
	PtrScreenContent uint64
}

// SetOffScreen loads a raw framebuffer-sized image from path and
// installs it as the off-screen override the driver blends against.
// Failures are tagged with the stage they occurred at, mirroring the
// original implementation's OffScreenError variants.
func (e *EBC) SetOffScreen(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &OffScreenError{Stage: "load", Path: path, Err: err}
	}
	if len(data) == 0 {
		return &OffScreenError{Stage: "decode", Path: path, Err: errors.New("empty image")}
	}

	payload := offScreen{
		Info:             uint64(len(data)),
		PtrScreenContent: uint64(uintptr(unsafe.Pointer(&data[0]))),
	}
	req := iow(nrOffScreen, unsafe.Sizeof(payload))
	if err := e.ioctl(req, unsafe.Pointer(&payload)); err != nil {
		return &OffScreenError{Stage: "upload", Path: path, Err: err}
	}
	return nil
}

type mode struct {
	SetDriverMode  uint8
	DriverModeVal  uint8
	SetDitherMode  uint8
	DitherModeVal  uint8
	RedrawDelay    uint16
	SetRedrawDelay uint8
	_pad           uint8
}

func (e *EBC) queryMode() (mode, error) {
	var m mode
	req := iowr(nrMode, unsafe.Sizeof(m))
	if err := e.ioctl(req, unsafe.Pointer(&m)); err != nil {
		return mode{}, err
	}
	return m, nil
}

func (e *EBC) DriverMode() (DriverMode, error) {
	m, err := e.queryMode()
	if err != nil {
		return 0, err
	}
	return DriverMode(m.DriverModeVal), nil
}

func (e *EBC) SetDriverMode(d DriverMode) error {
	if d == ModeZeroWaveform {
		return ErrZeroWaveformUnsupported
	}
	m := mode{SetDriverMode: 1, DriverModeVal: uint8(d)}
	req := iowr(nrMode, unsafe.Sizeof(m))
	return e.ioctl(req, unsafe.Pointer(&m))
}

func (e *EBC) DitherMode() (DitherMode, error) {
	m, err := e.queryMode()
	if err != nil {
		return 0, err
	}
	return DitherMode(m.DitherModeVal), nil
}

func (e *EBC) SetDitherMode(d DitherMode) error {
	m := mode{SetDitherMode: 1, DitherModeVal: uint8(d)}
	req := iowr(nrMode, unsafe.Sizeof(m))
	return e.ioctl(req, unsafe.Pointer(&m))
}

func (e *EBC) RedrawDelay() (uint16, error) {
	m, err := e.queryMode()
	if err != nil {
		return 0, err
	}
	return m.RedrawDelay, nil
}

func (e *EBC) SetRedrawDelay(delay uint16) error {
	m := mode{SetRedrawDelay: 1, RedrawDelay: delay}
	req := iowr(nrMode, unsafe.Sizeof(m))
	return e.ioctl(req, unsafe.Pointer(&m))
}
