package protocols

import (
	"errors"
	"fmt"

	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	xdg_shell "github.com/rajveermalviya/go-wayland/wayland/stable/xdg-shell"
)

// ErrNotGlobal is returned when binding an interface that is never
// advertised by the registry.
var ErrNotGlobal = errors.New("interface is not a global")

// globals maps the identity token of every bindable interface to the
// constructor of its local proxy.
var globals = map[*handle.Interface]func(*client.Context) client.Proxy{
	&CompositorInterface: func(ctx *client.Context) client.Proxy { return client.NewCompositor(ctx) },
	&ShmInterface:        func(ctx *client.Context) client.Proxy { return client.NewShm(ctx) },
	&SeatInterface:       func(ctx *client.Context) client.Proxy { return client.NewSeat(ctx) },
	&WmBaseInterface:     func(ctx *client.Context) client.Proxy { return xdg_shell.NewWmBase(ctx) },
}

// Globals returns the identity tokens that can be bound from a registry.
func Globals() []*handle.Interface {
	return []*handle.Interface{&CompositorInterface, &ShmInterface, &SeatInterface, &WmBaseInterface}
}

// Lookup returns the bindable interface advertised under name.
func Lookup(name string) (*handle.Interface, bool) {
	for _, iface := range Globals() {
		if iface.Is(name) {
			return iface, true
		}
	}
	return nil, false
}

// Binder implements handle.Registry over a go-wayland registry.
type Binder struct {
	Registry *client.Registry
}

func (b Binder) Bind(name uint32, iface *handle.Interface, version uint32) (any, error) {
	newProxy, ok := globals[iface]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotGlobal, iface)
	}
	ctx := b.Registry.Context()
	p := newProxy(ctx)
	if err := b.Registry.Bind(name, iface.Name, version, p); err != nil {
		ctx.Unregister(p)
		return nil, err
	}
	SetVersion(p, version)
	return p, nil
}
