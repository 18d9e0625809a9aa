package protocols

import (
	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

var (
	DisplayInterface  = handle.Interface{Name: "wl_display", Version: 1}
	RegistryInterface = handle.Interface{Name: "wl_registry", Version: 1}
	CallbackInterface = handle.Interface{Name: "wl_callback", Version: 1}
)

// Display describes wl_display. Destroying it closes the connection, which
// invalidates every object created from it.
type Display struct{}

func (Display) Interface() *handle.Interface { return &DisplayInterface }

func (Display) Destroy(d *client.Display) error {
	detach(d)
	return d.Context().Close()
}

// Registry describes wl_registry.
type Registry struct{}

// RegistryListener receives one Global call per advertised object.
type RegistryListener struct {
	Global       func(name uint32, iface string, version uint32)
	GlobalRemove func(name uint32)
}

func (Registry) Interface() *handle.Interface { return &RegistryInterface }

func (Registry) Destroy(r *client.Registry) error { return destroy(r) }

func (Registry) AddListener(r *client.Registry, l *RegistryListener) error {
	if r == nil {
		return ErrNilProxy
	}
	if err := attach(r); err != nil {
		return err
	}
	r.SetGlobalHandler(func(e client.RegistryGlobalEvent) {
		l.Global(e.Name, e.Interface, e.Version)
	})
	r.SetGlobalRemoveHandler(func(e client.RegistryGlobalRemoveEvent) {
		l.GlobalRemove(e.Name)
	})
	return nil
}

// Callback describes wl_callback, the barrier object behind a roundtrip.
type Callback struct{}

type CallbackListener struct {
	Done func(client.CallbackDoneEvent)
}

func (Callback) Interface() *handle.Interface { return &CallbackInterface }

func (Callback) Destroy(c *client.Callback) error { return destroy(c) }

func (Callback) AddListener(c *client.Callback, l *CallbackListener) error {
	if c == nil {
		return ErrNilProxy
	}
	if err := attach(c); err != nil {
		return err
	}
	c.SetDoneHandler(func(e client.CallbackDoneEvent) { l.Done(e) })
	return nil
}

type (
	DisplayHandle  = handle.Owned[*client.Display, Display]
	RegistryHandle = handle.Listened[*client.Registry, RegistryListener, Registry]
	CallbackHandle = handle.Listened[*client.Callback, CallbackListener, Callback]
)

// OwnDisplay takes ownership of a connected display.
func OwnDisplay(d *client.Display) *DisplayHandle {
	return handle.Own[*client.Display, Display](d)
}

// ListenRegistry takes ownership of r and attaches a default listener.
func ListenRegistry(r *client.Registry) (*RegistryHandle, error) {
	return handle.Listen[*client.Registry, RegistryListener, Registry](r)
}

// ListenCallback takes ownership of c and attaches a default listener.
func ListenCallback(c *client.Callback) (*CallbackHandle, error) {
	return handle.Listen[*client.Callback, CallbackListener, Callback](c)
}
