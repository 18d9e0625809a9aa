package protocols

import (
	"github.com/bnema/wlhandle/internal/handle"
	xdg_shell "github.com/rajveermalviya/go-wayland/wayland/stable/xdg-shell"
)

var WmBaseInterface = handle.Interface{Name: "xdg_wm_base", Version: 3}

// WmBase describes xdg_wm_base. The compositor pings it to check the client
// is alive; an unanswered ping gets the client disconnected.
type WmBase struct{}

type WmBaseListener struct {
	Ping func(xdg_shell.WmBasePingEvent)
}

func (WmBase) Interface() *handle.Interface { return &WmBaseInterface }

func (WmBase) Destroy(w *xdg_shell.WmBase) error { return destroy(w) }

func (WmBase) AddListener(w *xdg_shell.WmBase, l *WmBaseListener) error {
	if w == nil {
		return ErrNilProxy
	}
	if err := attach(w); err != nil {
		return err
	}
	w.SetPingHandler(func(e xdg_shell.WmBasePingEvent) { l.Ping(e) })
	return nil
}

type WmBaseHandle = handle.Listened[*xdg_shell.WmBase, WmBaseListener, WmBase]
