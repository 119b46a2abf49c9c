package ipc

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"hintmgrd/dispatch"
	"hintmgrd/hint"
	"hintmgrd/rect"
	"hintmgrd/registry"
)

// Server upgrades incoming HTTP connections to websockets and
// translates each JSON command it reads into a dispatch.Command sent
// to the dispatcher's command channel, per spec.md §6.1.
type Server struct {
	commands chan<- dispatch.Command
	upgrader websocket.Upgrader
}

// NewServer builds a Server sending commands to the dispatcher's
// command channel.
func NewServer(commands chan<- dispatch.Command) *Server {
	return &Server{
		commands: commands,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP implements http.Handler; mount it at the control path.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ipc: upgrade failed: %v\n", err)
		return
	}
	defer conn.Close()

	for {
		var cmd wireCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("ipc: connection closed unexpectedly: %v\n", err)
			}
			return
		}

		reply := s.handle(cmd)
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("ipc: write reply failed: %v\n", err)
			return
		}
	}
}

func (s *Server) handle(cmd wireCommand) wireReply {
	switch cmd.Type {
	case "app_add":
		reply := make(chan dispatch.AppAddResult, 1)
		s.commands <- dispatch.AppAdd{PID: cmd.PID, AppID: cmd.AppID, Reply: reply}
		res := <-reply
		if res.Err != nil {
			return errReply(res.Err)
		}
		return wireReply{OK: true, AppKey: string(res.Key)}

	case "app_remove":
		s.commands <- dispatch.AppRemove{Key: registry.AppKey(cmd.AppKey)}
		return okReply()

	case "window_add":
		h, err := parseHintPtr(cmd.Hint)
		if err != nil {
			return errReply(err)
		}
		area := toAreaOrZero(cmd.Area)
		reply := make(chan dispatch.WindowAddResult, 1)
		s.commands <- dispatch.WindowAdd{
			AppKey: registry.AppKey(cmd.AppKey), Title: derefStr(cmd.Title), Area: area,
			Hint: h, Visible: derefBool(cmd.Visible), ZIndex: derefInt32(cmd.ZIndex), Reply: reply,
		}
		res := <-reply
		if res.Err != nil {
			return errReply(res.Err)
		}
		return wireReply{OK: true, WinKey: string(res.Key)}

	case "window_update":
		h, err := parseHintPtr(cmd.Hint)
		if err != nil {
			return errReply(err)
		}
		var area *rect.Rect
		if cmd.Area != nil {
			r := cmd.Area.toRect()
			area = &r
		}
		reply := make(chan error, 1)
		s.commands <- dispatch.WindowUpdate{
			Key: registry.WinKey(cmd.WinKey), Title: cmd.Title, Area: area,
			HintSet: cmd.HintSet, Hint: h, Visible: cmd.Visible, ZIndex: cmd.ZIndex, Reply: reply,
		}
		if err := <-reply; err != nil {
			return errReply(err)
		}
		return okReply()

	case "window_remove":
		s.commands <- dispatch.WindowRemove{Key: registry.WinKey(cmd.WinKey)}
		return okReply()

	case "set_default_hint":
		h, err := parseHintPtr(cmd.Hint)
		if err != nil {
			return errReply(err)
		}
		if h == nil {
			return errReply(fmt.Errorf("ipc: set_default_hint requires a hint"))
		}
		s.commands <- dispatch.SetDefaultHint{Hint: *h}
		return okReply()

	case "get_default_hint":
		reply := make(chan hint.Hint, 1)
		s.commands <- dispatch.GetDefaultHint{Reply: reply}
		return wireReply{OK: true, Hint: (<-reply).String()}

	case "recompute":
		s.commands <- dispatch.Recompute{}
		return okReply()

	case "global_refresh":
		reply := make(chan error, 1)
		s.commands <- dispatch.GlobalRefresh{Reply: reply}
		if err := <-reply; err != nil {
			return errReply(err)
		}
		return okReply()

	case "dump":
		s.commands <- dispatch.Dump{Path: cmd.Path}
		return okReply()

	default:
		return errReply(fmt.Errorf("ipc: unrecognized command type %q", cmd.Type))
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func derefInt32(i *int32) int32 {
	if i == nil {
		return 0
	}
	return *i
}

func toAreaOrZero(r *wireRect) rect.Rect {
	if r == nil {
		return rect.Rect{}
	}
	return r.toRect()
}
