// Package ipc exposes the dispatcher's command stream (spec.md §6.1)
// over a websocket control socket: one JSON object per command, one
// JSON object per reply, in request order on a given connection.
package ipc

import (
	"hintmgrd/dispatch"
	"hintmgrd/hint"
	"hintmgrd/rect"
)

// wireRect is the JSON-friendly form of rect.Rect.
type wireRect struct {
	X1 int32 `json:"x1"`
	Y1 int32 `json:"y1"`
	X2 int32 `json:"x2"`
	Y2 int32 `json:"y2"`
}

func (w wireRect) toRect() rect.Rect {
	return rect.New(w.X1, w.Y1, w.X2, w.Y2)
}

func fromRect(r rect.Rect) wireRect {
	return wireRect{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}

// wireCommand is the envelope accepted from a control-socket client.
// Type selects which dispatch.Command it decodes to; unused fields for
// a given Type are ignored.
type wireCommand struct {
	Type string `json:"type"`

	PID    int    `json:"pid,omitempty"`
	AppID  string `json:"app_id,omitempty"`
	AppKey string `json:"app_key,omitempty"`
	WinKey string `json:"win_key,omitempty"`

	Title   *string   `json:"title,omitempty"`
	Area    *wireRect `json:"area,omitempty"`
	HintSet bool      `json:"hint_set,omitempty"`
	Hint    *string   `json:"hint,omitempty"`
	Visible *bool     `json:"visible,omitempty"`
	ZIndex  *int32    `json:"z_index,omitempty"`

	Path string `json:"path,omitempty"`
}

// wireReply is the envelope sent back for every wireCommand.
type wireReply struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	AppKey string `json:"app_key,omitempty"`
	WinKey string `json:"win_key,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

func errReply(err error) wireReply {
	return wireReply{OK: false, Error: err.Error()}
}

func okReply() wireReply { return wireReply{OK: true} }

func parseHintPtr(s *string) (*hint.Hint, error) {
	if s == nil {
		return nil, nil
	}
	h, err := hint.Parse(*s)
	if err != nil {
		return nil, &dispatch.ErrInvalidArgs{Reason: err.Error()}
	}
	return &h, nil
}
