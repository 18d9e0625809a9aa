package handle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindCall struct {
	name    uint32
	iface   *Interface
	version uint32
}

type testRegistry struct {
	calls  []bindCall
	result any
	err    error
}

func (r *testRegistry) Bind(name uint32, iface *Interface, version uint32) (any, error) {
	r.calls = append(r.calls, bindCall{name: name, iface: iface, version: version})
	return r.result, r.err
}

func TestBindUsesIdentityToken(t *testing.T) {
	obj := &testObject{}
	reg := &testRegistry{result: obj}

	got, err := Bind[*testObject, testClass](reg, 12, 3)
	require.NoError(t, err)
	assert.Same(t, obj, got)

	_, err = Bind[*testObject, plainClass](reg, 13, 1)
	require.NoError(t, err)

	require.Len(t, reg.calls, 2)
	assert.Same(t, &testInterface, reg.calls[0].iface)
	assert.Equal(t, uint32(12), reg.calls[0].name)
	assert.Equal(t, uint32(3), reg.calls[0].version)
	assert.Same(t, &plainInterface, reg.calls[1].iface)
}

func TestBindAbsentResult(t *testing.T) {
	reg := &testRegistry{}
	got, err := Bind[*testObject, testClass](reg, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, reg.calls, 1)
}

func TestBindError(t *testing.T) {
	reg := &testRegistry{err: errors.New("connection reset")}
	_, err := Bind[*testObject, testClass](reg, 5, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test_object")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestBindThenWrap(t *testing.T) {
	obj := &testObject{}
	reg := &testRegistry{result: obj}

	raw, err := Bind[*testObject, testClass](reg, 1, 1)
	require.NoError(t, err)
	w, err := Listen[*testObject, testListener, testClass](raw)
	require.NoError(t, err)
	assert.True(t, w.Valid())
	assert.Same(t, obj, w.Raw())
}
