// Package wayland drives a Wayland connection: it connects, listens to the
// registry, binds the globals it tracks and releases everything in reverse
// order of acquisition.
package wayland

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/wlhandle/internal/closure"
	"github.com/bnema/wlhandle/internal/handle"
	"github.com/bnema/wlhandle/internal/logger"
	"github.com/bnema/wlhandle/internal/protocols"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	xdg_shell "github.com/rajveermalviya/go-wayland/wayland/stable/xdg-shell"
)

// Advertisement is a global announced by the registry.
type Advertisement struct {
	Name      uint32
	Interface string
	Version   uint32
	Bound     bool
	// BoundVersion is the version the global was bound at, zero when the
	// client holds no binding.
	BoundVersion uint32
}

// Report summarizes a session.
type Report struct {
	Display    string
	Globals    []Advertisement
	Seat       *SeatInfo // nil without a bound seat
	ShmFormats []uint32
	Pings      int
}

// SeatInfo contains what the bound seat reported about itself.
type SeatInfo struct {
	ID          uint32
	Name        string
	HasPointer  bool
	HasKeyboard bool
	HasTouch    bool
}

// Client owns one connection and the globals bound through it.
//
// The registry handlers are installed through closure.Adapt, which keeps one
// slot per call site: only one Client per process may be connected at a time.
type Client struct {
	lib   Library
	track map[string]bool
	name  string

	display    *protocols.DisplayHandle
	registry   *protocols.RegistryHandle
	compositor protocols.CompositorHandle
	shm        protocols.ShmHandle
	seat       protocols.SeatHandle
	wmBase     protocols.WmBaseHandle

	// acquired is the release stack, most recent last.
	acquired []handle.Resource
	bound    map[uint32]handle.Resource
	globals  map[uint32]*Advertisement
	order    []uint32

	seatInfo SeatInfo
	formats  []uint32
	pings    int
	errs     []error
}

// NewClient creates a client binding the interfaces named in track. Names
// that no descriptor declares are listed but never bound.
func NewClient(lib Library, track ...string) *Client {
	if lib == nil {
		lib = Default
	}
	c := &Client{
		lib:     lib,
		track:   make(map[string]bool),
		bound:   make(map[uint32]handle.Resource),
		globals: make(map[uint32]*Advertisement),
	}
	for _, name := range track {
		if _, ok := protocols.Lookup(name); !ok {
			logger.Warn("no descriptor for tracked interface", "interface", name)
			continue
		}
		c.track[name] = true
	}
	return c
}

// Connect opens the display and its registry. A display that cannot be
// reached fails with ExitConnect, a missing registry with ExitRegistry.
func (c *Client) Connect(name string) error {
	if c.display.Valid() {
		return errors.New("already connected")
	}

	raw, err := c.lib.Connect(name)
	display := protocols.OwnDisplay(raw)
	if err != nil || !display.Valid() {
		if cerr := display.Close(); cerr != nil {
			logger.Debug("failed to close display", "err", cerr)
		}
		return exitError(ExitConnect, ErrConnect, err)
	}
	c.reset()
	c.display = display
	c.name = name

	rawRegistry, err := c.lib.GetRegistry(display.Raw())
	if err != nil || rawRegistry == nil {
		return exitError(ExitRegistry, ErrRegistry, errors.Join(err, c.closeDisplay()))
	}
	registry, err := protocols.ListenRegistry(rawRegistry)
	if err != nil {
		return exitError(ExitFailure, ErrRegistry, errors.Join(err, c.closeDisplay()))
	}
	c.registry = registry
	c.acquire(registry)

	registry.Listener().Global = closure.Adapt(func(name uint32, iface string, version uint32) {
		c.global(name, iface, version)
	})
	registry.Listener().GlobalRemove = closure.Adapt(func(name uint32) {
		c.globalRemove(name)
	})

	logger.Debug("connected", "display", name)
	return nil
}

// Roundtrip blocks until every pending event has been dispatched. Failures
// raised while handling those events are returned together.
func (c *Client) Roundtrip() error {
	if !c.display.Valid() {
		return ErrNotConnected
	}
	if err := c.lib.Roundtrip(c.display.Raw()); err != nil {
		return fmt.Errorf("roundtrip failed: %w", err)
	}
	errs := c.errs
	c.errs = nil
	return errors.Join(errs...)
}

// Close releases every bound global, then the registry, then the display.
func (c *Client) Close() error {
	var errs []error
	for i := len(c.acquired) - 1; i >= 0; i-- {
		errs = append(errs, c.acquired[i].Close())
	}
	c.acquired = nil
	clear(c.bound)
	errs = append(errs, c.closeDisplay())
	return errors.Join(errs...)
}

// reset forgets what a previous connection reported.
func (c *Client) reset() {
	c.acquired = nil
	clear(c.bound)
	clear(c.globals)
	c.order = nil
	c.seatInfo = SeatInfo{}
	c.formats = nil
	c.pings = 0
	c.errs = nil
}

func (c *Client) Compositor() *protocols.CompositorHandle { return &c.compositor }

func (c *Client) Shm() *protocols.ShmHandle { return &c.shm }

func (c *Client) Seat() *protocols.SeatHandle { return &c.seat }

func (c *Client) WmBase() *protocols.WmBaseHandle { return &c.wmBase }

// Globals returns the globals currently advertised, in announcement order.
func (c *Client) Globals() []Advertisement {
	out := make([]Advertisement, 0, len(c.order))
	for _, name := range c.order {
		ad := *c.globals[name]
		_, ad.Bound = c.bound[name]
		if !ad.Bound {
			ad.BoundVersion = 0
		}
		out = append(out, ad)
	}
	return out
}

// Report returns the current state of the session.
func (c *Client) Report() Report {
	r := Report{
		Display:    c.name,
		Globals:    c.Globals(),
		ShmFormats: c.ShmFormats(),
		Pings:      c.pings,
	}
	if c.seat.Valid() {
		info := c.seatInfo
		r.Seat = &info
	}
	return r
}

// SeatInfo returns what the bound seat reported.
func (c *Client) SeatInfo() SeatInfo { return c.seatInfo }

// ShmFormats returns the pixel formats wl_shm announced.
func (c *Client) ShmFormats() []uint32 { return slices.Clone(c.formats) }

// Pings returns how many xdg_wm_base pings were answered.
func (c *Client) Pings() int { return c.pings }

func (c *Client) acquire(r handle.Resource) {
	handle.Adopt(c.display, r)
	c.acquired = append(c.acquired, r)
}

func (c *Client) closeDisplay() error {
	err := c.display.Close()
	c.display = nil
	c.registry = nil
	return err
}

func (c *Client) binder() handle.Registry {
	return protocols.Binder{Registry: c.registry.Raw()}
}

func (c *Client) global(name uint32, iface string, version uint32) {
	c.globals[name] = &Advertisement{Name: name, Interface: iface, Version: version}
	c.order = append(c.order, name)
	logger.Debug("global advertised", "name", name, "interface", iface, "version", version)

	if !c.track[iface] {
		return
	}
	var (
		r   handle.Resource
		err error
	)
	switch {
	case protocols.CompositorInterface.Is(iface):
		r, err = bindOwned(c, &c.compositor, name, version)
	case protocols.ShmInterface.Is(iface):
		r, err = bindListened(c, &c.shm, name, version)
		c.shm.Listener().Format = func(e client.ShmFormatEvent) {
			c.formats = append(c.formats, e.Format)
		}
	case protocols.SeatInterface.Is(iface):
		r, err = bindListened(c, &c.seat, name, version)
		if r != nil {
			c.seatInfo = SeatInfo{ID: name}
		}
		c.seat.Listener().Name = func(e client.SeatNameEvent) {
			c.seatInfo.Name = e.Name
		}
		c.seat.Listener().Capabilities = func(e client.SeatCapabilitiesEvent) {
			c.seatInfo.HasPointer = e.Capabilities&protocols.SeatCapabilityPointer != 0
			c.seatInfo.HasKeyboard = e.Capabilities&protocols.SeatCapabilityKeyboard != 0
			c.seatInfo.HasTouch = e.Capabilities&protocols.SeatCapabilityTouch != 0
		}
	case protocols.WmBaseInterface.Is(iface):
		r, err = bindListened(c, &c.wmBase, name, version)
		c.wmBase.Listener().Ping = func(e xdg_shell.WmBasePingEvent) {
			if err := c.wmBase.Raw().Pong(e.Serial); err != nil {
				c.errs = append(c.errs, fmt.Errorf("failed to answer ping: %w", err))
				return
			}
			c.pings++
		}
	}
	if err != nil {
		c.errs = append(c.errs, err)
		return
	}
	if r != nil {
		c.bound[name] = r
		c.globals[name].BoundVersion = r.Interface().Clamp(version)
	}
}

func (c *Client) globalRemove(name uint32) {
	ad, ok := c.globals[name]
	if !ok {
		return
	}
	delete(c.globals, name)
	c.order = slices.DeleteFunc(c.order, func(n uint32) bool { return n == name })
	logger.Debug("global removed", "name", name, "interface", ad.Interface)

	if r, ok := c.bound[name]; ok {
		delete(c.bound, name)
		if err := r.Close(); err != nil {
			c.errs = append(c.errs, err)
		}
	}
}

// bindOwned binds name into w unless w already holds a handle.
func bindOwned[T comparable, C handle.Class[T]](c *Client, w *handle.Owned[T, C], name, version uint32) (handle.Resource, error) {
	if w.Valid() {
		logger.Debug("already bound, ignoring", "interface", w.Interface(), "name", name)
		return nil, nil
	}
	raw, err := handle.Bind[T, C](c.binder(), name, w.Interface().Clamp(version))
	if err != nil {
		return nil, err
	}
	if err := w.Reset(raw); err != nil {
		return nil, err
	}
	c.acquire(w)
	return w, nil
}

// bindListened binds name into w with a default listener attached.
func bindListened[T comparable, L any, C handle.ListenerClass[T, L]](c *Client, w *handle.Listened[T, L, C], name, version uint32) (handle.Resource, error) {
	if w.Valid() {
		logger.Debug("already bound, ignoring", "interface", w.Interface(), "name", name)
		return nil, nil
	}
	raw, err := handle.Bind[T, C](c.binder(), name, w.Interface().Clamp(version))
	if err != nil {
		return nil, err
	}
	if err := w.Reset(raw); err != nil {
		return nil, err
	}
	c.acquire(w)
	return w, nil
}
