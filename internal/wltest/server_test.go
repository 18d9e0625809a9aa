package wltest

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	id     uint32
	opcode uint16
	r      *reader
}

func readEvent(t *testing.T, c net.Conn) event {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	var hdr [8]byte
	_, err := io.ReadFull(c, hdr[:])
	require.NoError(t, err)
	word := order.Uint32(hdr[4:8])
	body := make([]byte, (word>>16)-8)
	_, err = io.ReadFull(c, body)
	require.NoError(t, err)
	return event{id: order.Uint32(hdr[0:4]), opcode: uint16(word), r: &reader{buf: body}}
}

func dial(t *testing.T, s *Server) *conn {
	t.Helper()
	c, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: s.Path(), Net: "unix"})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return &conn{c: c}
}

func TestRegistryAndSync(t *testing.T) {
	s, err := Listen(t.TempDir(),
		Global{Name: 1, Interface: "wl_compositor", Version: 6},
		Global{Name: 2, Interface: "wl_seat", Version: 9},
	)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := dial(t, s)
	require.NoError(t, c.send(1, 1, uint32(2)))
	require.NoError(t, c.send(1, 0, uint32(3)))

	ev := readEvent(t, c.c)
	assert.Equal(t, uint32(2), ev.id)
	assert.Equal(t, uint16(0), ev.opcode)
	assert.Equal(t, uint32(1), ev.r.uint32())
	assert.Equal(t, "wl_compositor", ev.r.string())
	assert.Equal(t, uint32(6), ev.r.uint32())

	ev = readEvent(t, c.c)
	assert.Equal(t, uint32(2), ev.r.uint32())
	assert.Equal(t, "wl_seat", ev.r.string())

	ev = readEvent(t, c.c)
	assert.Equal(t, uint32(3), ev.id)
	assert.Equal(t, uint32(1), ev.r.uint32(), "first serial")

	assert.Equal(t, 1, s.Registries())
}

func TestBindIsRecorded(t *testing.T) {
	s, err := Listen(t.TempDir(), Global{Name: 7, Interface: "wl_shm", Version: 1})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := dial(t, s)
	require.NoError(t, c.send(1, 1, uint32(2)))
	require.NoError(t, c.send(2, 0, uint32(7), "wl_shm", uint32(1), uint32(3)))
	require.NoError(t, c.send(3, 0))
	require.NoError(t, c.send(1, 0, uint32(4)))

	readEvent(t, c.c) // global
	readEvent(t, c.c) // done

	assert.Equal(t, []Bind{{Name: 7, Interface: "wl_shm", Version: 1, ID: 3}}, s.Binds())
	assert.Equal(t, []Request{{ObjectID: 3, Interface: "wl_shm", Opcode: 0}}, s.Requests())
}

func TestRemoveNotifiesRegistry(t *testing.T) {
	s, err := Listen(t.TempDir(), Global{Name: 4, Interface: "wl_seat", Version: 7})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	c := dial(t, s)
	require.NoError(t, c.send(1, 1, uint32(2)))
	require.NoError(t, c.send(1, 0, uint32(3)))
	readEvent(t, c.c)
	readEvent(t, c.c)

	require.NoError(t, s.Remove(4))
	ev := readEvent(t, c.c)
	assert.Equal(t, uint32(2), ev.id)
	assert.Equal(t, uint16(1), ev.opcode)
	assert.Equal(t, uint32(4), ev.r.uint32())
}

func TestStringPadding(t *testing.T) {
	for _, s := range []string{"", "a", "abc", "wl_shm", "xdg_wm_base"} {
		body := order.AppendUint32(nil, uint32(len(s)+1))
		body = append(body, s...)
		body = append(body, 0)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
		body = order.AppendUint32(body, 99)

		r := &reader{buf: body}
		assert.Equal(t, s, r.string())
		assert.Equal(t, uint32(99), r.uint32(), s)
	}
}

func TestStringWithPaddedLength(t *testing.T) {
	// Some clients count the padding in the length word.
	body := order.AppendUint32(nil, 16)
	body = append(body, "wl_compositor\x00\x00\x00"...)
	body = order.AppendUint32(body, 4)

	r := &reader{buf: body}
	assert.Equal(t, "wl_compositor", r.string())
	assert.Equal(t, uint32(4), r.uint32())
}
