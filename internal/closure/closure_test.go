package closure

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type globalFunc func(name uint32, iface string, version uint32)

func TestSlotLastWriterWins(t *testing.T) {
	var s Slot[globalFunc]
	var got []string

	f1 := s.Adapt(func(name uint32, iface string, _ uint32) {
		got = append(got, fmt.Sprintf("A:%d:%s", name, iface))
	})
	f1(1, "wl_compositor", 6)

	f2 := s.Adapt(func(name uint32, iface string, _ uint32) {
		got = append(got, fmt.Sprintf("B:%d:%s", name, iface))
	})
	f1(2, "wl_shm", 1)
	f2(3, "wl_seat", 9)

	assert.Equal(t, []string{"A:1:wl_compositor", "B:2:wl_shm", "B:3:wl_seat"}, got)
}

func TestSlotLoad(t *testing.T) {
	var s Slot[func() int]
	_, ok := s.Load()
	assert.False(t, ok)

	s.Adapt(func() int { return 42 })
	fn, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, 42, fn())
}

func TestSlotReturnValuesAndVariadic(t *testing.T) {
	var s Slot[func(sep string, parts ...string) (string, int)]
	f := s.Adapt(func(sep string, parts ...string) (string, int) {
		return strings.Join(parts, sep), len(parts)
	})
	joined, n := f("-", "a", "b", "c")
	assert.Equal(t, "a-b-c", joined)
	assert.Equal(t, 3, n)
}

func TestSlotNilClosure(t *testing.T) {
	var s Slot[func(int) (int, error)]
	f := s.Adapt(nil)
	n, err := f(5)
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestSlotRejectsNonFunc(t *testing.T) {
	var s Slot[int]
	assert.Panics(t, func() { s.Adapt(1) })
}

// adaptAt adapts from a single line, so every call shares one slot.
func adaptAt(fn func() string) func() string {
	return Adapt(fn)
}

func TestAdaptSharesSlotPerCallSite(t *testing.T) {
	first := adaptAt(func() string { return "first" })
	assert.Equal(t, "first", first())

	second := adaptAt(func() string { return "second" })
	assert.Equal(t, "second", first())
	assert.Equal(t, "second", second())
}

func TestAdaptSeparatesCallSites(t *testing.T) {
	a := Adapt(func() string { return "a" })
	b := Adapt(func() string { return "b" })
	assert.Equal(t, "a", a())
	assert.Equal(t, "b", b())
}

func TestAdaptCapturesState(t *testing.T) {
	count := 0
	inc := Adapt(func(n int) { count += n })
	inc(2)
	inc(3)
	assert.Equal(t, 5, count)
}
