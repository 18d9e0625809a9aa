package handle

import (
	"errors"
	"fmt"
)

// Owned exclusively owns one handle of type T and destroys it through C.
// The zero value is an absent handle and is ready to use.
type Owned[T comparable, C Class[T]] struct {
	raw T
	sc  scope
}

// Own takes ownership of raw, which may be the zero value.
func Own[T comparable, C Class[T]](raw T) *Owned[T, C] {
	return &Owned[T, C]{raw: raw}
}

// Raw returns the handle for passing into protocol calls. Ownership stays
// with the wrapper.
func (w *Owned[T, C]) Raw() T {
	if w == nil {
		var zero T
		return zero
	}
	return w.raw
}

// Valid reports whether the wrapper holds a handle.
func (w *Owned[T, C]) Valid() bool {
	var zero T
	return w != nil && w.raw != zero
}

// Interface returns the identity token of T.
func (w *Owned[T, C]) Interface() *Interface {
	var c C
	return c.Interface()
}

// Release gives up ownership and returns the handle. The wrapper becomes
// absent and will not destroy it.
func (w *Owned[T, C]) Release() T {
	var zero T
	raw := w.raw
	w.raw = zero
	return raw
}

// Reset destroys the current handle, if any, and takes ownership of raw.
func (w *Owned[T, C]) Reset(raw T) error {
	err := w.destroy()
	w.raw = raw
	return err
}

// Move transfers ownership out of from. from becomes absent, and w takes
// its place under from's parent along with from's children.
func (w *Owned[T, C]) Move(from *Owned[T, C]) error {
	return w.moveFrom(from, w)
}

func (w *Owned[T, C]) moveFrom(from *Owned[T, C], self Resource) error {
	if from == w {
		return nil
	}
	err := w.Reset(from.Release())
	w.sc.inherit(&from.sc, self)
	return err
}

// Close releases every adopted child still alive, in reverse adoption order,
// then destroys the handle. Closing twice is a no-op.
func (w *Owned[T, C]) Close() error {
	if w == nil {
		return nil
	}
	errs := w.sc.closeChildren(w.Interface())
	w.sc.detach()
	errs = append(errs, w.destroy())
	return errors.Join(errs...)
}

func (w *Owned[T, C]) String() string {
	state := "absent"
	if w.Valid() {
		state = "live"
	}
	return fmt.Sprintf("%s[%s]", w.Interface(), state)
}

func (w *Owned[T, C]) node() *scope {
	return &w.sc
}

func (w *Owned[T, C]) destroy() error {
	if !w.Valid() {
		return nil
	}
	raw := w.Release()
	var c C
	if err := c.Destroy(raw); err != nil {
		return fmt.Errorf("failed to destroy %s: %w", c.Interface(), err)
	}
	return nil
}
