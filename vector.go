// SPDX-License-Identifier: Apache-2.0

package alloc

import (
	"unsafe"
)

const growThreshold = 256

// Vector is an array-like ordered container that manages its storage
// through an Allocator: raw blocks via Allocate, element lifetimes via
// Construct and Destroy, blocks returned with Deallocate.
type Vector[T any] struct {
	alloc Allocator[T]
	ptr   *T
	len   int
	cap   int
}

// NewVector returns an empty vector whose storage is managed by a.
func NewVector[T any](a Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: a}
}

// Len returns the number of elements in the vector.
func (v *Vector[T]) Len() int {
	return v.len
}

// Cap returns the element capacity of the vector's current storage block.
func (v *Vector[T]) Cap() int {
	return v.cap
}

// At returns a pointer to element i. It panics if i is out of range.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.len {
		panic("alloc: vector index out of range")
	}
	return &v.slice()[i]
}

// Push appends x, growing the storage geometrically when full.
func (v *Vector[T]) Push(x T) error {
	if v.len == v.cap {
		if err := v.grow(v.len + 1); err != nil {
			return err
		}
	}
	v.alloc.Construct(v.alloc.Address(&v.slice()[v.len]), x)
	v.len++
	return nil
}

// Pop destroys and removes the last element. It panics on an empty vector.
func (v *Vector[T]) Pop() {
	if v.len == 0 {
		panic("alloc: pop of empty vector")
	}
	v.len--
	v.alloc.Destroy(&v.slice()[v.len])
}

// Close destroys all elements and releases the storage. The vector is empty
// and reusable afterwards.
func (v *Vector[T]) Close() {
	s := v.slice()
	for i := 0; i < v.len; i++ {
		v.alloc.Destroy(&s[i])
	}
	if v.cap > 0 {
		v.alloc.Deallocate(v.ptr, v.cap)
	}
	v.ptr = nil
	v.len = 0
	v.cap = 0
}

func (v *Vector[T]) slice() []T {
	return unsafe.Slice(v.ptr, v.cap)
}

// grow moves the elements into a block of at least minCap slots: doubling
// below growThreshold, then one-quarter steps.
func (v *Vector[T]) grow(minCap int) error {
	newCap := v.cap
	if newCap > 0 {
		for minCap > newCap {
			if newCap < growThreshold {
				newCap *= 2
			} else {
				newCap += newCap / 4
			}
		}
	} else {
		newCap = minCap
	}
	ptr, err := v.alloc.Allocate(newCap, v.ptr)
	if err != nil {
		return err
	}
	next := unsafe.Slice(ptr, newCap)
	old := v.slice()
	for i := 0; i < v.len; i++ {
		v.alloc.Construct(&next[i], old[i])
		v.alloc.Destroy(&old[i])
	}
	if v.cap > 0 {
		v.alloc.Deallocate(v.ptr, v.cap)
	}
	v.ptr = ptr
	v.cap = newCap
	return nil
}
