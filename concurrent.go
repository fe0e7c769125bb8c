// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"sync"
)

// Concurrent wraps an allocator so that all operations are serialized
// behind a mutex. The core variants assume a single logical owner; a
// container shared between goroutines wraps its allocator in Concurrent.
type Concurrent[T any] struct {
	mtx   sync.Mutex
	inner Allocator[T]
}

var _ Allocator[int] = (*Concurrent[int])(nil)

// NewConcurrent returns an allocator that is safe to be accessed
// concurrently from multiple goroutines. a must be non-nil.
func NewConcurrent[T any](a Allocator[T]) *Concurrent[T] {
	return &Concurrent[T]{inner: a}
}

// Address satisfies the Allocator interface.
func (a *Concurrent[T]) Address(v *T) *T {
	return a.inner.Address(v)
}

// MaxSize satisfies the Allocator interface.
func (a *Concurrent[T]) MaxSize() uintptr {
	return a.inner.MaxSize()
}

// Allocate satisfies the Allocator interface.
func (a *Concurrent[T]) Allocate(n int, hint *T) (*T, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.inner.Allocate(n, hint)
}

// Deallocate satisfies the Allocator interface.
func (a *Concurrent[T]) Deallocate(p *T, n int) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.inner.Deallocate(p, n)
}

// Construct satisfies the Allocator interface.
func (a *Concurrent[T]) Construct(p *T, v T) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.inner.Construct(p, v)
}

// Destroy satisfies the Allocator interface.
func (a *Concurrent[T]) Destroy(p *T) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.inner.Destroy(p)
}

// Strategy reports the wrapped allocator's strategy: the wrapper is the
// same strategy with synchronized access, not a strategy of its own.
func (a *Concurrent[T]) Strategy() Strategy {
	return a.inner.Strategy()
}

// Close forwards to the wrapped allocator's Close if it has one.
func (a *Concurrent[T]) Close() {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if c, ok := a.inner.(interface{ Close() }); ok {
		c.Close()
	}
}
