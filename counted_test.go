// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// largeRecord mirrors the demo record shape: 2056 bytes per element.
type largeRecord struct {
	first [1024]byte
	last  [1024]byte
	age   int64
}

func TestCountedBalancedLifecycle(t *testing.T) {
	require.Equal(t, uintptr(2056), unsafe.Sizeof(largeRecord{}))

	c := NewCounted[largeRecord]()

	p, err := c.Allocate(3, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), c.OutstandingAllocations())
	require.Equal(t, int64(0), c.OutstandingConstructions())

	s := unsafe.Slice(p, 3)
	for i := range s {
		c.Construct(&s[i], largeRecord{age: int64(i)})
	}
	require.Equal(t, int64(3), c.OutstandingAllocations())
	require.Equal(t, int64(3), c.OutstandingConstructions())

	for i := range s {
		c.Destroy(&s[i])
	}
	require.Equal(t, int64(3), c.OutstandingAllocations())
	require.Equal(t, int64(0), c.OutstandingConstructions())

	c.Deallocate(p, 3)
	require.Equal(t, int64(0), c.OutstandingAllocations())

	require.NotPanics(t, c.Close)
}

func TestCountedConstructionLeakPanicsAtClose(t *testing.T) {
	c := NewCounted[largeRecord]()

	p, err := c.Allocate(3, nil)
	require.NoError(t, err)

	s := unsafe.Slice(p, 3)
	c.Construct(&s[0], largeRecord{})
	c.Construct(&s[1], largeRecord{})
	c.Deallocate(p, 3)

	require.PanicsWithValue(t,
		"alloc: 2 constructed value(s) still live at close",
		c.Close)
}

func TestCountedLeakBothBalancesPanicsAtClose(t *testing.T) {
	c := NewCounted[largeRecord]()

	p, err := c.Allocate(3, nil)
	require.NoError(t, err)

	s := unsafe.Slice(p, 3)
	c.Construct(&s[0], largeRecord{})
	c.Construct(&s[1], largeRecord{})

	// Both balances are non-zero; the allocation balance is checked first
	require.PanicsWithValue(t,
		"alloc: 3 element slot(s) still allocated at close",
		c.Close)
}

func TestCountedAllocationLeakPanicsAtClose(t *testing.T) {
	c := NewCounted[int]()

	_, err := c.Allocate(1, nil)
	require.NoError(t, err)

	require.PanicsWithValue(t,
		"alloc: 1 element slot(s) still allocated at close",
		c.Close)
}

func TestCountedDestroyWithoutConstructPanics(t *testing.T) {
	c := NewCounted[int]()

	p, err := c.Allocate(1, nil)
	require.NoError(t, err)

	require.PanicsWithValue(t,
		"alloc: destroy without matching construct",
		func() { c.Destroy(p) })

	c.Deallocate(p, 1)
	require.NotPanics(t, c.Close)
}

func TestCountedCopySharesLedger(t *testing.T) {
	c := NewCounted[int]()
	cp := *c // value copy shares the live ledger

	p, err := c.Allocate(2, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), cp.OutstandingAllocations())

	cp.Deallocate(p, 2)
	require.Equal(t, int64(0), c.OutstandingAllocations())
	require.NotPanics(t, c.Close)
}

func TestCountedAllocateErrorLeavesBalance(t *testing.T) {
	c := NewCounted[int64]()

	_, err := c.Allocate(-1, nil)
	require.ErrorIs(t, err, ErrSizeLimit)
	require.Equal(t, int64(0), c.OutstandingAllocations())
	require.NotPanics(t, c.Close)
}
