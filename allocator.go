// SPDX-License-Identifier: Apache-2.0

package alloc

import "errors"

// Strategy identifies the bookkeeping behavior of an allocator variant.
type Strategy uint8

const (
	// StrategyPassthrough delegates every request to the Go runtime
	// allocator and keeps no bookkeeping state.
	StrategyPassthrough Strategy = iota + 1

	// StrategyCounted tracks outstanding allocations and constructions
	// and verifies both balances are zero when the allocator is closed.
	StrategyCounted
)

func (s Strategy) String() string {
	switch s {
	case StrategyPassthrough:
		return "passthrough"
	case StrategyCounted:
		return "counted"
	default:
		return "unknown"
	}
}

// ErrSizeLimit is returned by Allocate when the requested element count is
// negative or exceeds MaxSize.
var ErrSizeLimit = errors.New("alloc: allocation size out of range")

// Allocator hands out raw element storage and constructs and destroys
// values in it. It is the contract generic containers program against in
// place of direct use of the runtime allocator.
//
// Storage discipline: every pointer returned by Allocate must be released
// by exactly one Deallocate with the same element count, and every slot
// passed to Construct must see exactly one Destroy before its storage is
// released. Outside of the Counted variant's balances this is an unchecked
// precondition, not a reported error.
type Allocator[T any] interface {
	// Address returns the address of v. It has no allocation side effects
	// and never fails.
	Address(v *T) *T

	// MaxSize returns an upper bound on the element count a single
	// Allocate call can request.
	MaxSize() uintptr

	// Allocate returns uninitialized storage for n contiguous elements.
	// hint may point at storage the caller would like the new block to be
	// near; it is accepted for interface compatibility and unused.
	Allocate(n int, hint *T) (*T, error)

	// Deallocate releases storage previously returned by Allocate for
	// exactly n elements.
	Deallocate(p *T, n int)

	// Construct copy-initializes the slot at p with v. The slot must be
	// allocated and not yet constructed.
	Construct(p *T, v T)

	// Destroy finalizes the value at p and clears the slot. The storage
	// itself stays allocated until Deallocate.
	Destroy(p *T)

	// Strategy reports which variant this allocator is.
	Strategy() Strategy
}

// Finalizer is the teardown hook for element types that hold resources.
// Destroy invokes Finalize before the slot is cleared.
type Finalizer interface {
	Finalize()
}

func finalize[T any](p *T) {
	if f, ok := any(p).(Finalizer); ok {
		f.Finalize()
		return
	}
	if f, ok := any(*p).(Finalizer); ok {
		f.Finalize()
	}
}

// Equal reports whether two allocator instances are interchangeable:
// storage obtained from one may be operated on and released through the
// other. Instances of the same strategy are always equivalent, whatever
// their element types or balance state. Instances of different strategies
// never are.
func Equal[T, U any](a Allocator[T], b Allocator[U]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Strategy() == b.Strategy()
}

// Rebind produces a's strategy re-parameterized for element type U. The
// result is equivalent to a per Equal. Rebinding a Counted allocator yields
// an instance sharing a's live balances, so an allocator and its rebinds
// are accounted for as one unit.
//
// Go methods cannot introduce type parameters, which is why rebinding is a
// package function instead of an interface method. Rebind panics when given
// an allocator variant it does not know.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	switch src := any(a).(type) {
	case *Passthrough[T]:
		return &Passthrough[U]{log: src.log}
	case *Counted[T]:
		return &Counted[U]{
			Passthrough: Passthrough[U]{log: src.log},
			ledger:      src.ledger,
		}
	case *Concurrent[T]:
		return NewConcurrent(Rebind[U](src.inner))
	default:
		panic("alloc: cannot rebind unknown allocator variant")
	}
}
