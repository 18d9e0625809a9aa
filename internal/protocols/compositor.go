package protocols

import (
	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

var (
	CompositorInterface = handle.Interface{Name: "wl_compositor", Version: 4}
	SurfaceInterface    = handle.Interface{Name: "wl_surface", Version: 4}
)

// Compositor describes wl_compositor. It emits no events.
type Compositor struct{}

func (Compositor) Interface() *handle.Interface { return &CompositorInterface }

func (Compositor) Destroy(c *client.Compositor) error { return destroy(c) }

// Surface describes wl_surface.
type Surface struct{}

type SurfaceListener struct {
	Enter func(client.SurfaceEnterEvent)
	Leave func(client.SurfaceLeaveEvent)
}

func (Surface) Interface() *handle.Interface { return &SurfaceInterface }

func (Surface) Destroy(s *client.Surface) error { return destroy(s) }

func (Surface) AddListener(s *client.Surface, l *SurfaceListener) error {
	if s == nil {
		return ErrNilProxy
	}
	if err := attach(s); err != nil {
		return err
	}
	s.SetEnterHandler(func(e client.SurfaceEnterEvent) { l.Enter(e) })
	s.SetLeaveHandler(func(e client.SurfaceLeaveEvent) { l.Leave(e) })
	return nil
}

type (
	CompositorHandle = handle.Owned[*client.Compositor, Compositor]
	SurfaceHandle    = handle.Listened[*client.Surface, SurfaceListener, Surface]
)
