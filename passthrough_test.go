// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"bytes"
	"math"
	"testing"
	"unsafe"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPassthroughAllocateConstructDestroy(t *testing.T) {
	a := NewPassthrough[int]()

	p, err := a.Allocate(3, nil)
	require.NoError(t, err)
	require.NotNil(t, p)

	s := unsafe.Slice(p, 3)
	for i := range s {
		a.Construct(&s[i], (i+1)*10)
	}
	require.Equal(t, []int{10, 20, 30}, []int(s))

	for i := range s {
		a.Destroy(&s[i])
		require.Equal(t, 0, s[i]) // slot cleared
	}
	a.Deallocate(p, 3)
}

func TestMaxSizeExceedsIntCount(t *testing.T) {
	// The advertised bound is address-space math; Allocate's int count is
	// the practical cap for single-byte elements.
	require.Greater(t, uint64(NewPassthrough[byte]().MaxSize()), uint64(math.MaxInt))
}

func TestPassthroughAllocateSizeLimit(t *testing.T) {
	a := NewPassthrough[int64]()

	_, err := a.Allocate(-1, nil)
	require.ErrorIs(t, err, ErrSizeLimit)
}

func TestPassthroughTraceFields(t *testing.T) {
	var buf bytes.Buffer
	a := NewPassthrough[int64](WithLogger(zerolog.New(&buf)))

	p, err := a.Allocate(3, nil)
	require.NoError(t, err)
	a.Deallocate(p, 3)

	out := buf.String()
	require.Contains(t, out, `"op":"allocate"`)
	require.Contains(t, out, `"op":"deallocate"`)
	require.Contains(t, out, `"count":3`)
	require.Contains(t, out, `"elem_size":8`)
	require.Contains(t, out, `"addr":"0x`)
}

func TestPassthroughNoTraceByDefault(t *testing.T) {
	a := NewPassthrough[int]()
	p, err := a.Allocate(1, nil)
	require.NoError(t, err)
	a.Deallocate(p, 1)
}

func TestPassthroughDestroyRunsFinalizer(t *testing.T) {
	released := 0
	a := NewPassthrough[resource]()

	p, err := a.Allocate(1, nil)
	require.NoError(t, err)
	a.Construct(p, resource{released: &released})
	a.Destroy(p)
	a.Deallocate(p, 1)

	require.Equal(t, 1, released)
}

// resource is an element type with a teardown hook, shared by the
// passthrough and list tests.
type resource struct {
	released *int
}

func (r resource) Finalize() {
	if r.released != nil {
		*r.released++
	}
}
