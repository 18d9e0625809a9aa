// Package protocols declares the handle descriptors for the Wayland objects
// this client works with, on top of github.com/rajveermalviya/go-wayland.
//
// Each descriptor is a zero-size tag type. Descriptors with a listener shape
// implement handle.ListenerClass; the rest implement handle.Class.
package protocols

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rajveermalviya/go-wayland/wayland/client"
)

var (
	// ErrListenerAttached is returned when a proxy already has a listener.
	ErrListenerAttached = errors.New("listener already attached")
	// ErrNilProxy is returned when a listener is attached to an absent proxy.
	ErrNilProxy = errors.New("nil proxy")
)

// attached tracks proxies that carry a listener table. go-wayland replaces
// handlers silently, so a second attach is rejected here instead.
var attached sync.Map // client.Proxy -> struct{}

func attach(p client.Proxy) error {
	if _, loaded := attached.LoadOrStore(p, struct{}{}); loaded {
		return fmt.Errorf("%w to proxy %d", ErrListenerAttached, p.ID())
	}
	return nil
}

func detach(p client.Proxy) {
	attached.Delete(p)
}

// versions records the version each proxy speaks.
var versions sync.Map // client.Proxy -> uint32

// SetVersion records the version p was bound at. Objects created from another
// object, such as a keyboard from a seat, take their parent's version.
func SetVersion(p client.Proxy, version uint32) {
	versions.Store(p, version)
}

// Version returns the recorded version of p, zero when unknown.
func Version(p client.Proxy) uint32 {
	v, ok := versions.Load(p)
	if !ok {
		return 0
	}
	return v.(uint32)
}

// destroy unregisters p, and sends its destructor request when it has one.
func destroy(p interface {
	client.Proxy
	Destroy() error
}) error {
	detach(p)
	versions.Delete(p)
	return p.Destroy()
}

// release sends the release request of p when its version has one (since
// and later). Older objects cannot be released on the wire and are only
// forgotten locally.
func release(p interface {
	client.Proxy
	Release() error
}, since uint32) error {
	version := Version(p)
	detach(p)
	versions.Delete(p)
	if version >= since {
		return p.Release()
	}
	if ctx := p.Context(); ctx != nil {
		ctx.Unregister(p)
	}
	return nil
}
