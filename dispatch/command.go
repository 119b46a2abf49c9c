// Package dispatch implements the single-owner command loop: it
// serializes every registry mutation and property query, recomputing
// and uploading hints whenever a mutation can affect pixel coverage.
package dispatch

import (
	"hintmgrd/hint"
	"hintmgrd/rect"
	"hintmgrd/registry"
)

// Command is the tagged-union message the dispatcher accepts. Each
// concrete type below corresponds to one row of spec.md §6.1 (plus the
// supplemented diagnostic commands of SPEC_FULL.md §4).
type Command interface {
	isCommand()
}

// AppAdd registers a new application and replies with its key.
type AppAdd struct {
	PID   int
	AppID string
	Reply chan<- AppAddResult
}

// AppAddResult is the reply to AppAdd.
type AppAddResult struct {
	Key registry.AppKey
	Err error
}

func (AppAdd) isCommand() {}

// AppRemove removes an application and every window that belongs to
// it, then triggers a recompute.
type AppRemove struct {
	Key registry.AppKey
}

func (AppRemove) isCommand() {}

// WindowAdd registers a new window under an existing application.
type WindowAdd struct {
	AppKey  registry.AppKey
	Title   string
	Area    rect.Rect
	Hint    *hint.Hint
	Visible bool
	ZIndex  int32
	Reply   chan<- WindowAddResult
}

// WindowAddResult is the reply to WindowAdd.
type WindowAddResult struct {
	Key registry.WinKey
	Err error
}

func (WindowAdd) isCommand() {}

// WindowUpdate replaces a window's mutable attributes atomically.
// HintSet distinguishes "leave the hint alone" (false) from "replace
// the hint with Hint, which may itself be nil to clear it" (true),
// since a plain *hint.Hint cannot represent both "don't touch" and
// "set to absent".
type WindowUpdate struct {
	Key     registry.WinKey
	Title   *string
	Area    *rect.Rect
	HintSet bool
	Hint    *hint.Hint
	Visible *bool
	ZIndex  *int32
	Reply   chan<- error
}

func (WindowUpdate) isCommand() {}

// WindowRemove removes a window; removing an unknown key is a no-op.
type WindowRemove struct {
	Key registry.WinKey
}

func (WindowRemove) isCommand() {}

// SetDefaultHint replaces the global fallback hint.
type SetDefaultHint struct {
	Hint hint.Hint
}

func (SetDefaultHint) isCommand() {}

// GetDefaultHint is a property query; it never triggers a recompute.
type GetDefaultHint struct {
	Reply chan<- hint.Hint
}

func (GetDefaultHint) isCommand() {}

// Recompute forces a recompute/upload cycle for diagnostic purposes.
type Recompute struct{}

func (Recompute) isCommand() {}

// GlobalRefresh asks the driver to perform a full-panel refresh
// regardless of computed hints (SPEC_FULL.md §4).
type GlobalRefresh struct {
	Reply chan<- error
}

func (GlobalRefresh) isCommand() {}

// Dump serializes registry/compositor state for diagnostics. Path "-"
// means stderr.
type Dump struct {
	Path string
}

func (Dump) isCommand() {}
