package protocols

import (
	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

var (
	ShmInterface     = handle.Interface{Name: "wl_shm", Version: 1}
	ShmPoolInterface = handle.Interface{Name: "wl_shm_pool", Version: 1}
	BufferInterface  = handle.Interface{Name: "wl_buffer", Version: 1}
)

// Shm describes wl_shm, which advertises the pixel formats it accepts.
type Shm struct{}

type ShmListener struct {
	Format func(client.ShmFormatEvent)
}

func (Shm) Interface() *handle.Interface { return &ShmInterface }

func (Shm) Destroy(s *client.Shm) error { return destroy(s) }

func (Shm) AddListener(s *client.Shm, l *ShmListener) error {
	if s == nil {
		return ErrNilProxy
	}
	if err := attach(s); err != nil {
		return err
	}
	s.SetFormatHandler(func(e client.ShmFormatEvent) { l.Format(e) })
	return nil
}

// ShmPool describes wl_shm_pool. It emits no events.
type ShmPool struct{}

func (ShmPool) Interface() *handle.Interface { return &ShmPoolInterface }

func (ShmPool) Destroy(p *client.ShmPool) error { return destroy(p) }

// Buffer describes wl_buffer.
type Buffer struct{}

type BufferListener struct {
	Release func(client.BufferReleaseEvent)
}

func (Buffer) Interface() *handle.Interface { return &BufferInterface }

func (Buffer) Destroy(b *client.Buffer) error { return destroy(b) }

func (Buffer) AddListener(b *client.Buffer, l *BufferListener) error {
	if b == nil {
		return ErrNilProxy
	}
	if err := attach(b); err != nil {
		return err
	}
	b.SetReleaseHandler(func(e client.BufferReleaseEvent) { l.Release(e) })
	return nil
}

type (
	ShmHandle     = handle.Listened[*client.Shm, ShmListener, Shm]
	ShmPoolHandle = handle.Owned[*client.ShmPool, ShmPool]
	BufferHandle  = handle.Listened[*client.Buffer, BufferListener, Buffer]
)
