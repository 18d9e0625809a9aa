package handle

import (
	"fmt"
	"reflect"
	"sync"
)

// prototypes caches one synthesized table per listener shape.
var prototypes sync.Map // reflect.Type -> reflect.Value

// Defaults returns a new listener table of shape L with every slot set to a
// function that ignores its arguments and returns zero values.
//
// L must be a struct made only of exported func fields. Anything else is a
// programming error and panics.
func Defaults[L any]() *L {
	t := reflect.TypeOf((*L)(nil)).Elem()
	proto, ok := prototypes.Load(t)
	if !ok {
		proto, _ = prototypes.LoadOrStore(t, synthesize(t))
	}
	l := new(L)
	reflect.ValueOf(l).Elem().Set(proto.(reflect.Value))
	return l
}

func synthesize(t reflect.Type) reflect.Value {
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("handle: listener shape %s is not a struct", t))
	}
	v := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Func {
			panic(fmt.Sprintf("handle: listener shape %s: field %s is not an exported func", t, f.Name))
		}
		v.Field(i).Set(noop(f.Type))
	}
	return v
}

func noop(ft reflect.Type) reflect.Value {
	return reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		return out
	})
}
