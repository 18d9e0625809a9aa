package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyListener struct{}

type mixedListener struct {
	Done  func()
	Enter func(serial uint32, surface *testObject, x, y float64)
	Keys  func(keys []byte) bool
}

func TestDefaultsFillsEverySlot(t *testing.T) {
	l := Defaults[mixedListener]()
	require.NotNil(t, l.Done)
	require.NotNil(t, l.Enter)
	require.NotNil(t, l.Keys)

	assert.NotPanics(t, func() {
		l.Done()
		l.Enter(1, nil, 0.5, 0.25)
		assert.False(t, l.Keys([]byte{1, 2, 3}))
	})
}

func TestDefaultsReturnsIndependentTables(t *testing.T) {
	a := Defaults[mixedListener]()
	b := Defaults[mixedListener]()
	require.NotSame(t, a, b)

	var called bool
	a.Done = func() { called = true }
	b.Done()
	assert.False(t, called)
}

func TestDefaultsEmptyShape(t *testing.T) {
	assert.NotNil(t, Defaults[emptyListener]())
}

func TestDefaultsRejectsMalformedShapes(t *testing.T) {
	type withData struct {
		Done  func()
		Count int
	}
	type withHidden struct {
		Done func()
		done func()
	}

	assert.Panics(t, func() { Defaults[withData]() })
	assert.Panics(t, func() { Defaults[withHidden]() })
	assert.Panics(t, func() { Defaults[func()]() })
}
