// Package handle owns protocol handles and the listener tables attached to them.
//
// Every handle type is described by a zero-size tag type implementing Class
// (and ListenerClass when the type emits events). Wrappers are instantiated
// with that tag, so a handle type without a descriptor does not compile:
//
//	compositor := handle.Own[*client.Compositor, protocols.Compositor](raw)
//	registry, err := handle.Listen[*client.Registry, protocols.RegistryListener, protocols.Registry](raw)
//
// The zero value of the handle type is the absent handle.
package handle

// Interface is the identity token of a handle type. Identity is the address
// of the package-level variable declaring it, never the name.
type Interface struct {
	// Name is the protocol interface name, e.g. "wl_compositor".
	Name string
	// Version is the highest version this client speaks.
	Version uint32
}

// Is reports whether an advertised interface name refers to this interface.
func (i *Interface) Is(name string) bool {
	return i != nil && i.Name == name
}

// Clamp returns the version to bind for an advertised version.
func (i *Interface) Clamp(advertised uint32) uint32 {
	if advertised > i.Version {
		return i.Version
	}
	return advertised
}

func (i *Interface) String() string {
	if i == nil {
		return "<nil>"
	}
	return i.Name
}

// Class is the static descriptor of handle type T.
type Class[T any] interface {
	Interface() *Interface
	Destroy(T) error
}

// ListenerClass is a Class whose handles emit events into a listener table of
// shape L. L is a struct of exported func fields, one per event.
type ListenerClass[T, L any] interface {
	Class[T]
	// AddListener attaches l to h. The implementation must read the slots of
	// l at event time so later overrides take effect.
	AddListener(h T, l *L) error
}
