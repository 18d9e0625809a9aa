package protocols

import (
	"testing"

	"github.com/bnema/wlhandle/internal/handle"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	xdg_shell "github.com/rajveermalviya/go-wayland/wayland/stable/xdg-shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerShapesSynthesize(t *testing.T) {
	assert.NotPanics(t, func() {
		handle.Defaults[RegistryListener]().Global(1, "wl_compositor", 4)
		handle.Defaults[RegistryListener]().GlobalRemove(1)
		handle.Defaults[CallbackListener]().Done(client.CallbackDoneEvent{})
		handle.Defaults[ShmListener]().Format(client.ShmFormatEvent{})
		handle.Defaults[BufferListener]().Release(client.BufferReleaseEvent{})
		handle.Defaults[SurfaceListener]().Enter(client.SurfaceEnterEvent{})
		handle.Defaults[SeatListener]().Capabilities(client.SeatCapabilitiesEvent{})
		handle.Defaults[KeyboardListener]().Key(client.KeyboardKeyEvent{})
		handle.Defaults[PointerListener]().Motion(client.PointerMotionEvent{})
		handle.Defaults[TouchListener]().Down(client.TouchDownEvent{})
		handle.Defaults[WmBaseListener]().Ping(xdg_shell.WmBasePingEvent{})
	})
}

func TestAddListenerRejectsSecondAttach(t *testing.T) {
	seat := &client.Seat{}
	t.Cleanup(func() { detach(seat) })

	w, err := handle.Listen[*client.Seat, SeatListener, Seat](seat)
	require.NoError(t, err)
	assert.True(t, w.Valid())

	err = Seat{}.AddListener(seat, handle.Defaults[SeatListener]())
	assert.ErrorIs(t, err, ErrListenerAttached)

	detach(seat)
	assert.NoError(t, Seat{}.AddListener(seat, handle.Defaults[SeatListener]()))
}

func TestAddListenerNilProxy(t *testing.T) {
	assert.ErrorIs(t, Registry{}.AddListener(nil, handle.Defaults[RegistryListener]()), ErrNilProxy)
	assert.ErrorIs(t, Shm{}.AddListener(nil, handle.Defaults[ShmListener]()), ErrNilProxy)
	assert.ErrorIs(t, WmBase{}.AddListener(nil, handle.Defaults[WmBaseListener]()), ErrNilProxy)
}

func TestAttachIsPerProxy(t *testing.T) {
	a, b := &client.Registry{}, &client.Registry{}
	t.Cleanup(func() {
		detach(a)
		detach(b)
	})

	require.NoError(t, Registry{}.AddListener(a, handle.Defaults[RegistryListener]()))
	assert.NoError(t, Registry{}.AddListener(b, handle.Defaults[RegistryListener]()))
}

func TestLookup(t *testing.T) {
	iface, ok := Lookup("wl_compositor")
	require.True(t, ok)
	assert.Same(t, &CompositorInterface, iface)

	iface, ok = Lookup("xdg_wm_base")
	require.True(t, ok)
	assert.Same(t, &WmBaseInterface, iface)

	_, ok = Lookup("wl_surface")
	assert.False(t, ok, "surfaces are created, never advertised")

	_, ok = Lookup("zwp_linux_dmabuf_v1")
	assert.False(t, ok)
}

func TestBinderRejectsNonGlobal(t *testing.T) {
	_, err := Binder{}.Bind(3, &SurfaceInterface, 1)
	assert.ErrorIs(t, err, ErrNotGlobal)

	_, err = handle.Bind[*client.Pointer, Pointer](Binder{}, 3, 1)
	assert.ErrorIs(t, err, ErrNotGlobal)
}

func TestGlobalsHaveConstructors(t *testing.T) {
	for _, iface := range Globals() {
		_, ok := globals[iface]
		assert.True(t, ok, iface.Name)
	}
}

func TestVersionIsRecordedPerProxy(t *testing.T) {
	a, b := &client.Seat{}, &client.Seat{}
	t.Cleanup(func() {
		versions.Delete(a)
		versions.Delete(b)
	})

	assert.Zero(t, Version(a))
	SetVersion(a, 7)
	SetVersion(b, 4)
	assert.Equal(t, uint32(7), Version(a))
	assert.Equal(t, uint32(4), Version(b))
}

func TestReleaseBelowSinceIsLocal(t *testing.T) {
	seat := &client.Seat{}
	SetVersion(seat, SeatReleaseSince-1)
	require.NoError(t, Seat{}.AddListener(seat, handle.Defaults[SeatListener]()))

	// No context: sending release would panic, so reaching here proves the
	// request was not sent.
	assert.NoError(t, Seat{}.Destroy(seat))
	assert.Zero(t, Version(seat))
	assert.NoError(t, Seat{}.AddListener(seat, handle.Defaults[SeatListener]()), "destroy detaches the listener")
	detach(seat)

	keyboard := &client.Keyboard{}
	SetVersion(keyboard, InputReleaseSince-1)
	assert.NoError(t, Keyboard{}.Destroy(keyboard))
	assert.NoError(t, Pointer{}.Destroy(&client.Pointer{}), "unknown version is never released on the wire")
	assert.NoError(t, Touch{}.Destroy(&client.Touch{}))
}
