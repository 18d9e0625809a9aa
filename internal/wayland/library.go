package wayland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/wlhandle/internal/logger"
	"github.com/bnema/wlhandle/internal/protocols"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Library is the set of protocol entry points a Client drives.
type Library interface {
	// Connect returns nil or an error when no compositor is reachable.
	Connect(name string) (*client.Display, error)
	// GetRegistry returns the registry globals are advertised on.
	GetRegistry(d *client.Display) (*client.Registry, error)
	// Roundtrip blocks until the compositor has answered every request sent
	// so far, dispatching the events received meanwhile.
	Roundtrip(d *client.Display) error
}

// Default drives go-wayland directly.
var Default Library = goWayland{}

type goWayland struct{}

func (goWayland) Connect(name string) (*client.Display, error) {
	addr, err := SocketPath(name)
	if err != nil {
		return nil, err
	}
	display, err := client.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Wayland display: %w", err)
	}
	return display, nil
}

func (goWayland) GetRegistry(d *client.Display) (*client.Registry, error) {
	registry, err := d.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	return registry, nil
}

func (goWayland) Roundtrip(d *client.Display) error {
	raw, err := d.Sync()
	if err != nil {
		return fmt.Errorf("failed to request sync: %w", err)
	}
	callback, err := protocols.ListenCallback(raw)
	if err != nil {
		return err
	}
	defer func() {
		if err := callback.Close(); err != nil {
			logger.Debug("failed to release sync callback", "err", err)
		}
	}()

	done := false
	callback.Listener().Done = func(client.CallbackDoneEvent) { done = true }
	for !done {
		if err := d.Context().Dispatch(); err != nil {
			return fmt.Errorf("failed to dispatch events: %w", err)
		}
	}
	return nil
}

// SocketPath resolves a display name. An empty name is left for the protocol
// library to resolve from WAYLAND_DISPLAY; relative names live in
// XDG_RUNTIME_DIR.
func SocketPath(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return name, nil
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", errors.New("XDG_RUNTIME_DIR not set in the environment")
	}
	return filepath.Join(dir, name), nil
}
