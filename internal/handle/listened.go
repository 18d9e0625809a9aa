package handle

import (
	"errors"
	"fmt"
)

// ErrAddListener is returned when a listener table cannot be attached to a
// freshly owned handle. The handle has been destroyed by then.
var ErrAddListener = errors.New("failed to add listener")

// Listened is an Owned handle that also owns the listener table its events
// dispatch into. The table is attached before the wrapper is returned, and
// every slot starts as a no-op.
type Listened[T comparable, L any, C ListenerClass[T, L]] struct {
	Owned[T, C]
	listener *L
}

// Listen takes ownership of raw and attaches a default listener table to it.
// On failure raw is destroyed and no wrapper is returned.
func Listen[T comparable, L any, C ListenerClass[T, L]](raw T) (*Listened[T, L, C], error) {
	w := &Listened[T, L, C]{}
	if err := w.Reset(raw); err != nil {
		return nil, err
	}
	return w, nil
}

// Listener returns the live listener table. Assigning a slot takes effect for
// the next event dispatched on that slot.
func (w *Listened[T, L, C]) Listener() *L {
	if w.listener == nil {
		w.listener = Defaults[L]()
	}
	return w.listener
}

// Reset destroys the current handle, then owns raw with a fresh default
// listener table attached.
func (w *Listened[T, L, C]) Reset(raw T) error {
	var zero T
	err := w.Owned.Reset(zero)
	l := Defaults[L]()
	if raw != zero {
		var c C
		if aerr := c.AddListener(raw, l); aerr != nil {
			if derr := c.Destroy(raw); derr != nil {
				aerr = errors.Join(aerr, derr)
			}
			return errors.Join(err, fmt.Errorf("%w to %s: %w", ErrAddListener, c.Interface(), aerr))
		}
	}
	w.raw = raw
	w.listener = l
	return err
}

// Move transfers the handle and its attached table out of from. from is left
// absent with a fresh default table.
func (w *Listened[T, L, C]) Move(from *Listened[T, L, C]) error {
	if from == w {
		return nil
	}
	err := w.Owned.moveFrom(&from.Owned, w)
	w.listener, from.listener = from.Listener(), Defaults[L]()
	return err
}
