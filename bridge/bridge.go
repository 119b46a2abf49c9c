// Package bridge reconciles a window manager's tree of windows against
// the dispatcher's registry, sending AppAdd/WindowAdd/WindowUpdate/
// WindowRemove commands for whatever changed since the last pass.
// Grounded on original_source/src/bridge/sway.rs's SwayBridge, whose
// process_tree/diff technique this reimplements against an arbitrary
// TreeSource instead of a hard-coded sway IPC connection.
package bridge

import (
	"context"
	"time"

	"hintmgrd/dispatch"
	"hintmgrd/hint"
	"hintmgrd/rect"
	"hintmgrd/registry"
)

// WindowSnapshot is one window as reported by a TreeSource at a single
// point in time.
type WindowSnapshot struct {
	ID      string
	PID     int
	AppID   string
	Title   string
	Area    rect.Rect
	Visible bool
	Hint    *hint.Hint
	ZIndex  int32
}

func (w WindowSnapshot) equalData(o WindowSnapshot) bool {
	return w.Title == o.Title && w.Area == o.Area && w.Visible == o.Visible &&
		w.ZIndex == o.ZIndex && hintEqual(w.Hint, o.Hint)
}

func hintEqual(a, b *hint.Hint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TreeSource is anything that can report the current window tree and
// signal when it may have changed. Quiescent returns a channel that
// receives a value whenever the source believes a new Tree() call
// could return something different; Run debounces bursts of these the
// same way the original bridge debounces sway IPC events.
type TreeSource interface {
	Tree(ctx context.Context) ([]WindowSnapshot, error)
	Quiescent(ctx context.Context) (<-chan struct{}, error)
}

// debounceWindow mirrors the 100ms timeout SwayBridge::run waits on its
// event stream before re-processing the tree.
const debounceWindow = 100 * time.Millisecond

// Reconciler owns the mapping from a TreeSource's transient IDs to the
// dispatcher's durable AppKey/WinKey identities.
type Reconciler struct {
	commands chan<- dispatch.Command

	appKeys    map[int]registry.AppKey
	windowKeys map[string]registry.WinKey
	lastSeen   map[string]WindowSnapshot
}

// NewReconciler builds a Reconciler that sends commands to the given
// channel, normally the dispatcher's command channel.
func NewReconciler(commands chan<- dispatch.Command) *Reconciler {
	return &Reconciler{
		commands:   commands,
		appKeys:    make(map[int]registry.AppKey),
		windowKeys: make(map[string]registry.WinKey),
		lastSeen:   make(map[string]WindowSnapshot),
	}
}

// Run processes the tree once immediately, then again each time source
// settles after a burst of changes, until ctx is canceled.
func (r *Reconciler) Run(ctx context.Context, source TreeSource) error {
	events, err := source.Quiescent(ctx)
	if err != nil {
		return err
	}

	if err := r.processTree(ctx, source); err != nil {
		return err
	}

	timer := time.NewTimer(debounceWindow)
	defer timer.Stop()
	dirty := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			dirty = true
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounceWindow)
		case <-timer.C:
			if dirty {
				dirty = false
				if err := r.processTree(ctx, source); err != nil {
					return err
				}
			}
			timer.Reset(debounceWindow)
		}
	}
}

func (r *Reconciler) processTree(ctx context.Context, source TreeSource) error {
	windows, err := source.Tree(ctx)
	if err != nil {
		return err
	}

	seenPID := make(map[int]struct{}, len(windows))
	seenID := make(map[string]struct{}, len(windows))

	for _, w := range windows {
		seenPID[w.PID] = struct{}{}
		seenID[w.ID] = struct{}{}

		if _, ok := r.appKeys[w.PID]; !ok {
			key, err := r.addApp(w.AppID, w.PID)
			if err != nil {
				return err
			}
			r.appKeys[w.PID] = key
		}

		if _, ok := r.windowKeys[w.ID]; !ok {
			if err := r.addWindow(w); err != nil {
				return err
			}
		} else if prev, ok := r.lastSeen[w.ID]; ok && !prev.equalData(w) {
			if err := r.updateWindow(w); err != nil {
				return err
			}
		}
		r.lastSeen[w.ID] = w
	}

	for id, key := range r.windowKeys {
		if _, ok := seenID[id]; !ok {
			r.commands <- dispatch.WindowRemove{Key: key}
			delete(r.windowKeys, id)
			delete(r.lastSeen, id)
		}
	}

	for pid, key := range r.appKeys {
		if _, ok := seenPID[pid]; !ok {
			r.commands <- dispatch.AppRemove{Key: key}
			delete(r.appKeys, pid)
		}
	}

	return nil
}

func (r *Reconciler) addApp(appID string, pid int) (registry.AppKey, error) {
	reply := make(chan dispatch.AppAddResult, 1)
	r.commands <- dispatch.AppAdd{AppID: appID, PID: pid, Reply: reply}
	res := <-reply
	return res.Key, res.Err
}

func (r *Reconciler) addWindow(w WindowSnapshot) error {
	reply := make(chan dispatch.WindowAddResult, 1)
	r.commands <- dispatch.WindowAdd{
		AppKey: r.appKeys[w.PID], Title: w.Title, Area: w.Area,
		Hint: w.Hint, Visible: w.Visible, ZIndex: w.ZIndex, Reply: reply,
	}
	res := <-reply
	if res.Err != nil {
		return res.Err
	}
	r.windowKeys[w.ID] = res.Key
	return nil
}

func (r *Reconciler) updateWindow(w WindowSnapshot) error {
	reply := make(chan error, 1)
	area := w.Area
	visible := w.Visible
	zIndex := w.ZIndex
	title := w.Title
	r.commands <- dispatch.WindowUpdate{
		Key: r.windowKeys[w.ID], Title: &title, Area: &area,
		HintSet: true, Hint: w.Hint, Visible: &visible, ZIndex: &zIndex, Reply: reply,
	}
	return <-reply
}
