package dispatch

import (
	"context"
	"fmt"
	"log"
	"os"

	"hintmgrd/compositor"
	"hintmgrd/driver"
	"hintmgrd/registry"
)

// Dispatcher is the single owner of the compositor: every mutation and
// query flows through its Run loop over a single channel, so the
// compositor and the registry it embeds never need their own locking.
type Dispatcher struct {
	compositor *compositor.Compositor
	sink       driver.Sink
}

// New builds a Dispatcher over compositor c, uploading through sink.
func New(c *compositor.Compositor, sink driver.Sink) *Dispatcher {
	return &Dispatcher{compositor: c, sink: sink}
}

// Run drains commands until ctx is canceled or the channel is closed.
// It is meant to run in its own goroutine, started once at startup.
func (d *Dispatcher) Run(ctx context.Context, commands <-chan Command) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-commands:
			if !ok {
				return
			}
			d.dispatch(cmd)
		}
	}
}

// dispatch applies one command to the registry/compositor, recomputing
// and uploading hints whenever the command can change pixel coverage.
func (d *Dispatcher) dispatch(cmd Command) {
	switch c := cmd.(type) {

	case AppAdd:
		if err := validatePID(c.PID); err != nil {
			reply(c.Reply, AppAddResult{Err: err})
			return
		}
		key := d.compositor.AppAdd(c.AppID, c.PID, nil)
		reply(c.Reply, AppAddResult{Key: key})

	case AppRemove:
		d.compositor.AppRemove(c.Key)
		d.recomputeAndUpload()

	case WindowAdd:
		if err := validateArea(c.Area.X1, c.Area.Y1, c.Area.X2, c.Area.Y2); err != nil {
			reply(c.Reply, WindowAddResult{Err: err})
			return
		}
		key, err := d.compositor.WindowAdd(registry.WindowAddInput{
			AppKey:  c.AppKey,
			Title:   c.Title,
			Area:    c.Area,
			Hint:    c.Hint,
			Visible: c.Visible,
			ZIndex:  c.ZIndex,
		})
		if err == nil {
			d.recomputeAndUpload()
		}
		reply(c.Reply, WindowAddResult{Key: key, Err: err})

	case WindowUpdate:
		err := d.applyWindowUpdate(c)
		if err == nil {
			d.recomputeAndUpload()
		}
		reply(c.Reply, err)

	case WindowRemove:
		d.compositor.WindowRemove(c.Key)
		d.recomputeAndUpload()

	case SetDefaultHint:
		d.compositor.DefaultHint = c.Hint
		d.recomputeAndUpload()

	case GetDefaultHint:
		reply(c.Reply, d.compositor.DefaultHint)

	case Recompute:
		d.recomputeAndUpload()

	case GlobalRefresh:
		err := d.sink.GlobalRefresh()
		if err != nil {
			log.Printf("dispatch: global refresh failed: %v\n", err)
		}
		reply(c.Reply, err)

	case Dump:
		d.dump(c.Path)

	default:
		log.Printf("dispatch: unhandled command type %T\n", cmd)
	}
}

// applyWindowUpdate reads the window's current data, applies whichever
// fields c sets, and writes it back atomically via registry.WindowUpdate.
func (d *Dispatcher) applyWindowUpdate(c WindowUpdate) error {
	w, err := d.compositor.Window(c.Key)
	if err != nil {
		return err
	}
	data := w.Data

	if c.Title != nil {
		data.Title = *c.Title
	}
	if c.Area != nil {
		if verr := validateArea(c.Area.X1, c.Area.Y1, c.Area.X2, c.Area.Y2); verr != nil {
			return verr
		}
		data.Area = *c.Area
	}
	if c.HintSet {
		data.Hint = c.Hint
	}
	if c.Visible != nil {
		data.Visible = *c.Visible
	}
	if c.ZIndex != nil {
		data.ZIndex = *c.ZIndex
	}

	return d.compositor.WindowUpdate(c.Key, data)
}

// recomputeAndUpload recomputes hints and pushes them to the sink. A
// failed upload is logged, not propagated: per spec.md §7 the command
// that triggered the recompute has already succeeded against the
// registry, and the next recompute uploads the full hint set again.
func (d *Dispatcher) recomputeAndUpload() {
	computed, err := d.compositor.ComputeHints()
	if err != nil {
		log.Printf("dispatch: compute hints failed: %v\n", err)
		return
	}
	if err := d.sink.UploadHints(computed); err != nil {
		log.Printf("dispatch: upload hints failed: %v\n", err)
	}
}

func (d *Dispatcher) dump(path string) {
	computed, err := d.compositor.ComputeHints()
	if err != nil {
		log.Printf("dispatch: dump: compute hints failed: %v\n", err)
		return
	}

	out := os.Stderr
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			log.Printf("dispatch: dump: couldn't open %q: %v\n", path, err)
			return
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintf(out, "default_hint: %s\n", computed.DefaultHint)
	for _, rh := range computed.RectHints {
		fmt.Fprintf(out, "  %+v -> %s\n", rh.Rect, rh.Hint)
	}
	for _, w := range d.compositor.Windows() {
		fmt.Fprintf(out, "window %s (app %s): %+v\n", w.UID, w.AppKey, w.Data)
	}
}

// reply sends v on ch without blocking forever if the caller has
// already walked away from a closed or nil reply channel.
func reply[T any](ch chan<- T, v T) {
	if ch == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatch: reply on closed channel: %v\n", r)
		}
	}()
	ch <- v
}
