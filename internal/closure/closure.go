// Package closure turns state-capturing callbacks into stable function values
// backed by a single storage slot.
//
// A Slot holds exactly one closure. Every function returned by the slot calls
// whatever closure was stored last, so re-adapting at the same slot redirects
// all previously returned functions to the new closure. Adapt keeps one slot
// per call site, process-wide.
package closure

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
)

// Slot stores the closure behind an adapted function of type F.
// The zero value is an empty slot.
type Slot[F any] struct {
	mu    sync.RWMutex
	fn    F
	set   bool
	tramp F
	once  sync.Once
}

// Adapt stores fn in the slot, replacing any previous closure, and returns
// the slot's function. The returned function is the same value on every call.
func (s *Slot[F]) Adapt(fn F) F {
	s.mu.Lock()
	s.fn = fn
	s.set = true
	s.mu.Unlock()
	s.once.Do(s.build)
	return s.tramp
}

// Load returns the closure currently stored.
func (s *Slot[F]) Load() (F, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fn, s.set
}

func (s *Slot[F]) build() {
	t := reflect.TypeOf((*F)(nil)).Elem()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("closure: %s is not a func type", t))
	}
	tramp := reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
		fn, _ := s.Load()
		v := reflect.ValueOf(fn)
		if v.IsNil() {
			out := make([]reflect.Value, t.NumOut())
			for i := range out {
				out[i] = reflect.Zero(t.Out(i))
			}
			return out
		}
		if t.IsVariadic() {
			return v.CallSlice(args)
		}
		return v.Call(args)
	})
	s.tramp = tramp.Interface().(F)
}

type site struct {
	file string
	line int
	typ  reflect.Type
}

var slots sync.Map // site -> *Slot[F]

// Adapt stores fn in the slot owned by the calling line and returns that
// slot's function. Calling Adapt again from the same line, with the same F,
// replaces the closure for every function previously returned there.
func Adapt[F any](fn F) F {
	_, file, line, _ := runtime.Caller(1)
	return slotAt[F](site{file: file, line: line, typ: reflect.TypeOf((*F)(nil)).Elem()}).Adapt(fn)
}

func slotAt[F any](key site) *Slot[F] {
	if s, ok := slots.Load(key); ok {
		return s.(*Slot[F])
	}
	s, _ := slots.LoadOrStore(key, new(Slot[F]))
	return s.(*Slot[F])
}
