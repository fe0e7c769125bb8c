// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"fmt"
	"sync/atomic"
)

// Counted wraps the passthrough behavior with outstanding-allocation and
// outstanding-construction accounting, so that allocator misuse surfaces
// deterministically at teardown instead of as a silent leak.
//
// Copies and rebinds of a Counted allocator share one live ledger: a
// container that allocates nodes through a rebound copy and releases them
// through the original settles against the same balance, and Close verifies
// the terminal invariant for the whole family.
type Counted[T any] struct {
	Passthrough[T]
	ledger *ledger
}

// ledger holds the balances shared by every copy and rebind of one Counted
// allocator. The counters are atomic so a family spread across Concurrent
// wrappers stays consistent.
type ledger struct {
	allocs     atomic.Int64 // element slots acquired, not yet released
	constructs atomic.Int64 // values constructed, not yet destroyed
}

var _ Allocator[int] = (*Counted[int])(nil)

// NewCounted returns a counted allocator for element type T with zero
// balances.
func NewCounted[T any](opts ...Option) *Counted[T] {
	cfg := newConfig(opts)
	return &Counted[T]{
		Passthrough: Passthrough[T]{log: cfg.log},
		ledger:      &ledger{},
	}
}

// Allocate satisfies the Allocator interface and adds n slots to the
// outstanding-allocation balance.
func (a *Counted[T]) Allocate(n int, hint *T) (*T, error) {
	p, err := a.Passthrough.Allocate(n, hint)
	if err != nil {
		return nil, err
	}
	a.ledger.allocs.Add(int64(n))
	return p, nil
}

// Deallocate satisfies the Allocator interface and settles n slots against
// the outstanding-allocation balance. Releasing more than was allocated
// drives the balance negative; that is caught by Close rather than here.
func (a *Counted[T]) Deallocate(p *T, n int) {
	a.Passthrough.Deallocate(p, n)
	a.ledger.allocs.Add(-int64(n))
}

// Construct satisfies the Allocator interface and adds one outstanding
// construction.
func (a *Counted[T]) Construct(p *T, v T) {
	a.Passthrough.Construct(p, v)
	a.ledger.constructs.Add(1)
}

// Destroy satisfies the Allocator interface. It panics when no outstanding
// construction exists to match it.
func (a *Counted[T]) Destroy(p *T) {
	if a.ledger.constructs.Load() == 0 {
		panic("alloc: destroy without matching construct")
	}
	a.Passthrough.Destroy(p)
	a.ledger.constructs.Add(-1)
}

// Strategy satisfies the Allocator interface.
func (a *Counted[T]) Strategy() Strategy {
	return StrategyCounted
}

// OutstandingAllocations returns the element slots currently acquired but
// not yet released across the allocator's rebind family.
func (a *Counted[T]) OutstandingAllocations() int64 {
	return a.ledger.allocs.Load()
}

// OutstandingConstructions returns the values currently constructed but not
// yet destroyed across the allocator's rebind family.
func (a *Counted[T]) OutstandingConstructions() int64 {
	return a.ledger.constructs.Load()
}

// Close enforces the terminal invariant: both balances must be zero when
// the allocator is discarded. A non-zero balance means the calling
// container leaked storage or constructed values, and Close panics. The
// allocation balance is checked before the construction balance.
func (a *Counted[T]) Close() {
	if n := a.ledger.allocs.Load(); n != 0 {
		panic(fmt.Sprintf("alloc: %d element slot(s) still allocated at close", n))
	}
	if n := a.ledger.constructs.Load(); n != 0 {
		panic(fmt.Sprintf("alloc: %d constructed value(s) still live at close", n))
	}
}
