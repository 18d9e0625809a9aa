package handle

import "fmt"

// Registry issues the protocol's generic bind request and returns the new,
// untyped handle.
type Registry interface {
	Bind(name uint32, iface *Interface, version uint32) (any, error)
}

// Bind binds the global advertised as name using T's identity token and
// returns it typed as T. Ownership passes to the caller.
//
// There is no runtime check that name refers to an object of T's interface;
// callers compare the advertised interface with C's Interface first.
func Bind[T any, C Class[T]](r Registry, name, version uint32) (T, error) {
	var (
		c    C
		zero T
	)
	raw, err := r.Bind(name, c.Interface(), version)
	if err != nil {
		return zero, fmt.Errorf("failed to bind %s (name %d, version %d): %w", c.Interface(), name, version, err)
	}
	if raw == nil {
		return zero, nil
	}
	return raw.(T), nil
}
