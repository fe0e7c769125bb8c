// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
)

// Passthrough is the baseline allocator variant: raw storage comes straight
// from the Go runtime allocator and every acquisition and release is traced.
// It keeps no state beyond the trace logger.
type Passthrough[T any] struct {
	log zerolog.Logger
}

var _ Allocator[int] = (*Passthrough[int])(nil)

// NewPassthrough returns a passthrough allocator for element type T.
func NewPassthrough[T any](opts ...Option) *Passthrough[T] {
	cfg := newConfig(opts)
	return &Passthrough[T]{log: cfg.log}
}

// Address satisfies the Allocator interface.
func (a *Passthrough[T]) Address(v *T) *T {
	return v
}

// MaxSize returns the address-space limit divided by the element size.
// Allocate takes an int count, so for small elements most of this range is
// out of reach of a single call; the bound is the contract-level ceiling,
// not a promise the runtime can satisfy.
func (a *Passthrough[T]) MaxSize() uintptr {
	size := sizeOf[T]()
	if size == 0 {
		return ^uintptr(0)
	}
	return ^uintptr(0) / size
}

// Allocate satisfies the Allocator interface. The backing memory is
// element-typed so the garbage collector keeps correct pointer maps for
// pointer-bearing T; the block stays alive for as long as any element
// pointer into it does.
//
// ErrSizeLimit covers counts that are negative or beyond MaxSize. A count
// inside that range but beyond what the runtime can actually allocate
// surfaces as a runtime panic, the Go rendition of an unsatisfiable
// process-wide allocation.
func (a *Passthrough[T]) Allocate(n int, _ *T) (*T, error) {
	if n < 0 || uintptr(n) > a.MaxSize() {
		return nil, fmt.Errorf("%w: %d elements of size %d", ErrSizeLimit, n, sizeOf[T]())
	}
	buf := make([]T, n)
	p := unsafe.SliceData(buf)
	a.trace("allocate", n, p)
	return p, nil
}

// Deallocate satisfies the Allocator interface. The runtime reclaims the
// block once no element pointers into it remain; the call ends the block's
// lifetime in the allocator contract and emits the release trace.
func (a *Passthrough[T]) Deallocate(p *T, n int) {
	a.trace("deallocate", n, p)
}

// Construct satisfies the Allocator interface.
func (a *Passthrough[T]) Construct(p *T, v T) {
	*p = v
}

// Destroy satisfies the Allocator interface. If the element implements
// Finalizer its Finalize method runs first, then the slot is zeroed so the
// collector drops anything the value still referenced.
func (a *Passthrough[T]) Destroy(p *T) {
	finalize(p)
	var zero T
	*p = zero
}

// Strategy satisfies the Allocator interface.
func (a *Passthrough[T]) Strategy() Strategy {
	return StrategyPassthrough
}

func (a *Passthrough[T]) trace(op string, n int, p *T) {
	a.log.Trace().
		Str("op", op).
		Int("count", n).
		Uint64("elem_size", uint64(sizeOf[T]())).
		Str("addr", fmt.Sprintf("%p", p)).
		Msg(op)
}

func sizeOf[T any]() uintptr {
	var x T
	return unsafe.Sizeof(x)
}
