// Package registry holds the identity and lifecycle of applications
// and windows: who they are, what hint they fall back to, and which
// windows belong to which application.
package registry

import (
	"fmt"

	"github.com/google/uuid"

	"hintmgrd/hint"
	"hintmgrd/rect"
)

// AppKey identifies an Application as "<app_id>:<pid>".
type AppKey string

// WinKey identifies a Window; a fresh UUID is minted for every window
// on creation.
type WinKey string

// ErrUnknownApp is returned when an operation references an
// Application key the registry has no record of.
type ErrUnknownApp struct{ Key AppKey }

func (e *ErrUnknownApp) Error() string {
	return fmt.Sprintf("registry: unknown application %q", e.Key)
}

// ErrUnknownWindow is returned when an operation references a Window
// key the registry has no record of.
type ErrUnknownWindow struct{ Key WinKey }

func (e *ErrUnknownWindow) Error() string {
	return fmt.Sprintf("registry: unknown window %q", e.Key)
}

// Application groups windows belonging to one process and carries the
// default hint applied to any of its windows that don't override it.
type Application struct {
	AppID       string
	PID         int
	DefaultHint *hint.Hint
	Windows     map[WinKey]struct{}
}

// Key returns the application's identity key.
func (a *Application) Key() AppKey {
	return AppKey(fmt.Sprintf("%s:%d", a.AppID, a.PID))
}

// WindowData carries a window's mutable attributes; WindowUpdate
// replaces all of them atomically.
type WindowData struct {
	Title   string
	Area    rect.Rect
	Hint    *hint.Hint
	Visible bool
	ZIndex  int32
}

// Window is an on-screen window, permanently bound to one Application.
type Window struct {
	UID    WinKey
	AppKey AppKey
	Data   WindowData
}

// Registry owns every Application and Window. It is not safe for
// concurrent use — the dispatcher is its sole owner.
type Registry struct {
	apps    map[AppKey]*Application
	windows map[WinKey]*Window
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		apps:    make(map[AppKey]*Application),
		windows: make(map[WinKey]*Window),
	}
}

// AppAdd registers a new Application, or returns the existing key
// unchanged if one with the same (app_id, pid) identity already
// exists.
func (r *Registry) AppAdd(appID string, pid int, defaultHint *hint.Hint) AppKey {
	key := AppKey(fmt.Sprintf("%s:%d", appID, pid))

	if _, ok := r.apps[key]; !ok {
		r.apps[key] = &Application{
			AppID:       appID,
			PID:         pid,
			DefaultHint: defaultHint,
			Windows:     make(map[WinKey]struct{}),
		}
	}

	return key
}

// AppRemove removes an Application and every window that belongs to
// it. Removing an unknown key is a no-op.
func (r *Registry) AppRemove(key AppKey) {
	app, ok := r.apps[key]
	if !ok {
		return
	}

	for winKey := range app.Windows {
		delete(r.windows, winKey)
	}
	delete(r.apps, key)
}

// App returns the Application for key.
func (r *Registry) App(key AppKey) (*Application, error) {
	app, ok := r.apps[key]
	if !ok {
		return nil, &ErrUnknownApp{Key: key}
	}
	return app, nil
}

// AppSetHint sets an Application's default hint.
func (r *Registry) AppSetHint(key AppKey, h hint.Hint) error {
	app, err := r.App(key)
	if err != nil {
		return err
	}
	app.DefaultHint = &h
	return nil
}

// AppUnsetHint clears an Application's default hint, falling further
// back to the global default.
func (r *Registry) AppUnsetHint(key AppKey) error {
	app, err := r.App(key)
	if err != nil {
		return err
	}
	app.DefaultHint = nil
	return nil
}

// WindowAddInput carries the attributes of a new window.
type WindowAddInput struct {
	AppKey  AppKey
	Title   string
	Area    rect.Rect
	Hint    *hint.Hint
	Visible bool
	ZIndex  int32
}

// WindowAdd registers a new window under in.AppKey, minting a fresh
// UID. It fails with ErrUnknownApp if the application doesn't exist.
func (r *Registry) WindowAdd(in WindowAddInput) (WinKey, error) {
	app, err := r.App(in.AppKey)
	if err != nil {
		return "", err
	}

	uid := WinKey(uuid.NewString())
	r.windows[uid] = &Window{
		UID:    uid,
		AppKey: in.AppKey,
		Data: WindowData{
			Title:   in.Title,
			Area:    in.Area,
			Hint:    in.Hint,
			Visible: in.Visible,
			ZIndex:  in.ZIndex,
		},
	}
	app.Windows[uid] = struct{}{}

	return uid, nil
}

// Window returns the Window for key.
func (r *Registry) Window(key WinKey) (*Window, error) {
	w, ok := r.windows[key]
	if !ok {
		return nil, &ErrUnknownWindow{Key: key}
	}
	return w, nil
}

// WindowUpdate replaces a window's mutable attributes atomically.
func (r *Registry) WindowUpdate(key WinKey, data WindowData) error {
	w, err := r.Window(key)
	if err != nil {
		return err
	}
	w.Data = data
	return nil
}

// WindowRemove removes a window and detaches it from its application.
// Removing an unknown key is a no-op.
func (r *Registry) WindowRemove(key WinKey) {
	w, ok := r.windows[key]
	if !ok {
		return
	}
	delete(r.windows, key)
	if app, ok := r.apps[w.AppKey]; ok {
		delete(app.Windows, key)
	}
}

// WindowHintFallback resolves a window's effective hint as
// window.hint ?? app.default_hint ?? global.
func (r *Registry) WindowHintFallback(key WinKey, global hint.Hint) (hint.Hint, error) {
	w, err := r.Window(key)
	if err != nil {
		return hint.Hint{}, err
	}

	if w.Data.Hint != nil {
		return *w.Data.Hint, nil
	}

	app, err := r.App(w.AppKey)
	if err != nil {
		return hint.Hint{}, err
	}

	if app.DefaultHint != nil {
		return *app.DefaultHint, nil
	}

	return global, nil
}

// Windows returns every registered window. Iteration order is
// unspecified; callers that need a deterministic result (the
// compositor, via the ZTree) must not rely on it.
func (r *Registry) Windows() []*Window {
	out := make([]*Window, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w)
	}
	return out
}
