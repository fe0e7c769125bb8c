// SPDX-License-Identifier: Apache-2.0

package alloc

// node is the internal element record of List. Nodes come from a rebind of
// the list's element allocator.
type node[T any] struct {
	next, prev *node[T]
	value      T
}

// Finalize forwards destruction to the node's value, so element finalizers
// run when a node is destroyed.
func (n *node[T]) Finalize() {
	finalize(&n.value)
}

// List is a doubly-linked ordered container. Element values live inside
// nodes allocated through Rebind of the supplied allocator, the same path
// node-based containers take with a rebinding allocator in other runtimes.
type List[T any] struct {
	nodes Allocator[node[T]]
	root  node[T] // sentinel: root.next is the front, root.prev the back
	size  int
}

// NewList returns an empty list whose nodes are managed by a rebind of a.
func NewList[T any](a Allocator[T]) *List[T] {
	l := &List[T]{nodes: Rebind[node[T]](a)}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int {
	return l.size
}

// PushBack appends v at the tail.
func (l *List[T]) PushBack(v T) error {
	return l.insert(v, l.root.prev)
}

// PushFront inserts v at the head.
func (l *List[T]) PushFront(v T) error {
	return l.insert(v, &l.root)
}

// Front returns a pointer to the first value, or nil when the list is
// empty.
func (l *List[T]) Front() *T {
	if l.size == 0 {
		return nil
	}
	return &l.root.next.value
}

// Back returns a pointer to the last value, or nil when the list is empty.
func (l *List[T]) Back() *T {
	if l.size == 0 {
		return nil
	}
	return &l.root.prev.value
}

// PopFront destroys and removes the first element. It panics on an empty
// list.
func (l *List[T]) PopFront() {
	l.remove(l.root.next)
}

// PopBack destroys and removes the last element. It panics on an empty
// list.
func (l *List[T]) PopBack() {
	l.remove(l.root.prev)
}

// Each calls fn on every value, front to back.
func (l *List[T]) Each(fn func(*T)) {
	for n := l.root.next; n != &l.root; n = n.next {
		fn(&n.value)
	}
}

// Close destroys and releases every node, leaving the list empty and
// reusable.
func (l *List[T]) Close() {
	for l.size > 0 {
		l.remove(l.root.next)
	}
}

func (l *List[T]) insert(v T, after *node[T]) error {
	p, err := l.nodes.Allocate(1, nil)
	if err != nil {
		return err
	}
	l.nodes.Construct(p, node[T]{value: v, prev: after, next: after.next})
	after.next.prev = p
	after.next = p
	l.size++
	return nil
}

func (l *List[T]) remove(n *node[T]) {
	if l.size == 0 {
		panic("alloc: pop of empty list")
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	l.nodes.Destroy(n)
	l.nodes.Deallocate(n, 1)
	l.size--
}
