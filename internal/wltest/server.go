// Package wltest runs a minimal in-process Wayland compositor for tests.
//
// The server speaks just enough of the wire protocol for a client to obtain
// a registry, bind globals and complete roundtrips: wl_display.sync,
// wl_display.get_registry and wl_registry.bind are answered, every other
// request is recorded and ignored.
package wltest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"slices"
	"sync"
)

// SocketName is the name of the socket created inside the server directory.
const SocketName = "wayland-test"

var order = binary.NativeEndian

// Global is one object the server advertises.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Bind is a wl_registry.bind request received by the server.
type Bind struct {
	Name      uint32
	Interface string
	Version   uint32
	ID        uint32
}

// Request is any other request received by the server.
type Request struct {
	ObjectID  uint32
	Interface string
	Opcode    uint16
}

// Server is a fake compositor listening on a unix socket.
type Server struct {
	path string
	ln   *net.UnixListener
	wg   sync.WaitGroup

	mu         sync.Mutex
	globals    []Global
	binds      []Bind
	requests   []Request
	conns      map[*net.UnixConn]*conn
	registries int
}

type conn struct {
	c        *net.UnixConn
	wmu      sync.Mutex
	registry uint32
}

// Listen starts a server in dir advertising globals.
func Listen(dir string, globals ...Global) (*Server, error) {
	path := filepath.Join(dir, SocketName)
	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", path, err)
	}
	s := &Server{
		path:    path,
		ln:      ln,
		globals: slices.Clone(globals),
		conns:   make(map[*net.UnixConn]*conn),
	}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Binds returns the bind requests received so far.
func (s *Server) Binds() []Bind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.binds)
}

// Requests returns the unhandled requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Registries returns how many registries clients have created.
func (s *Server) Registries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registries
}

// Remove withdraws a global and tells every connected registry.
func (s *Server) Remove(name uint32) error {
	s.mu.Lock()
	s.globals = slices.DeleteFunc(s.globals, func(g Global) bool { return g.Name == name })
	var targets []*conn
	for _, c := range s.conns {
		if c.registry != 0 {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	var errs []error
	for _, c := range targets {
		errs = append(errs, c.send(c.registry, 1, name))
	}
	return errors.Join(errs...)
}

// Close stops accepting clients and drops every open connection.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		c, err := s.ln.AcceptUnix()
		if err != nil {
			return
		}
		cc := &conn{c: c}
		s.mu.Lock()
		s.conns[c] = cc
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(cc)
			s.mu.Lock()
			delete(s.conns, c)
			s.mu.Unlock()
			c.Close()
		}()
	}
}

func (s *Server) handle(c *conn) {
	objects := map[uint32]string{1: "wl_display"}
	var serial uint32
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(c.c, hdr[:]); err != nil {
			return
		}
		id := order.Uint32(hdr[0:4])
		word := order.Uint32(hdr[4:8])
		opcode, size := uint16(word), word>>16
		if size < 8 {
			return
		}
		body := make([]byte, size-8)
		if _, err := io.ReadFull(c.c, body); err != nil {
			return
		}
		r := &reader{buf: body}

		switch iface := objects[id]; {
		case iface == "wl_display" && opcode == 0:
			callback := r.uint32()
			serial++
			if c.send(callback, 0, serial) != nil {
				return
			}
		case iface == "wl_display" && opcode == 1:
			registry := r.uint32()
			objects[registry] = "wl_registry"
			s.mu.Lock()
			c.registry = registry
			s.registries++
			globals := slices.Clone(s.globals)
			s.mu.Unlock()
			for _, g := range globals {
				if c.send(registry, 0, g.Name, g.Interface, g.Version) != nil {
					return
				}
			}
		case iface == "wl_registry" && opcode == 0:
			b := Bind{Name: r.uint32(), Interface: r.string(), Version: r.uint32(), ID: r.uint32()}
			objects[b.ID] = b.Interface
			s.mu.Lock()
			s.binds = append(s.binds, b)
			s.mu.Unlock()
		default:
			s.mu.Lock()
			s.requests = append(s.requests, Request{ObjectID: id, Interface: iface, Opcode: opcode})
			s.mu.Unlock()
		}
	}
}

// send writes one event. Arguments are uint32 or string.
func (c *conn) send(id uint32, opcode uint16, args ...any) error {
	var body []byte
	for _, arg := range args {
		switch v := arg.(type) {
		case uint32:
			body = order.AppendUint32(body, v)
		case string:
			body = order.AppendUint32(body, uint32(len(v)+1))
			body = append(body, v...)
			body = append(body, 0)
			for len(body)%4 != 0 {
				body = append(body, 0)
			}
		default:
			panic(fmt.Sprintf("wltest: unsupported argument %T", arg))
		}
	}
	msg := order.AppendUint32(nil, id)
	msg = order.AppendUint32(msg, uint32(len(body)+8)<<16|uint32(opcode))
	msg = append(msg, body...)

	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := c.c.Write(msg)
	return err
}

type reader struct {
	buf []byte
}

func (r *reader) uint32() uint32 {
	if len(r.buf) < 4 {
		return 0
	}
	v := order.Uint32(r.buf)
	r.buf = r.buf[4:]
	return v
}

func (r *reader) string() string {
	n := int(r.uint32())
	if n == 0 || n > len(r.buf) {
		return ""
	}
	// The length may count the padding too; the string ends at the first NUL.
	v := r.buf[:n]
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	padded := (n + 3) &^ 3
	if padded > len(r.buf) {
		padded = len(r.buf)
	}
	r.buf = r.buf[padded:]
	return string(v)
}
