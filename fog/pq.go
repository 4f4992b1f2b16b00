// SPDX-License-Identifier: MIT
//
// File: pq.go
// Role: Binary min-heap addressed by node handle.
// Policy:
//   - Every element is keyed by the handle of the node it stands for; at most
//     one element per handle.
//   - A changed priority is repaired in place by handle, never by identity.

package fog

import (
	"container/heap"

	"github.com/emufog/emufog-sub000/graph"
)

// indexedHeap implements heap.Interface and tracks the slot of every handle.
type indexedHeap[T any] struct {
	items []T
	pos   map[graph.Handle]int
	key   func(T) graph.Handle
	less  func(a, b T) bool
}

func newIndexedHeap[T any](key func(T) graph.Handle, less func(a, b T) bool) *indexedHeap[T] {
	return &indexedHeap[T]{
		pos:  make(map[graph.Handle]int),
		key:  key,
		less: less,
	}
}

func (h *indexedHeap[T]) Len() int           { return len(h.items) }
func (h *indexedHeap[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }

func (h *indexedHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.key(h.items[i])] = i
	h.pos[h.key(h.items[j])] = j
}

// Push is called by container/heap only.
func (h *indexedHeap[T]) Push(x any) {
	it := x.(T)
	h.pos[h.key(it)] = len(h.items)
	h.items = append(h.items, it)
}

// Pop is called by container/heap only.
func (h *indexedHeap[T]) Pop() any {
	n := len(h.items) - 1
	it := h.items[n]
	var zero T
	h.items[n] = zero
	h.items = h.items[:n]
	delete(h.pos, h.key(it))
	return it
}

// push inserts it; an element already present under the same handle is
// replaced.
func (h *indexedHeap[T]) push(it T) {
	if i, ok := h.pos[h.key(it)]; ok {
		h.items[i] = it
		heap.Fix(h, i)
		return
	}
	heap.Push(h, it)
}

// pop removes the minimum element.
func (h *indexedHeap[T]) pop() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(h).(T), true
}

func (h *indexedHeap[T]) contains(k graph.Handle) bool {
	_, ok := h.pos[k]
	return ok
}

// fix restores heap order after the priority of k changed.
func (h *indexedHeap[T]) fix(k graph.Handle) bool {
	i, ok := h.pos[k]
	if ok {
		heap.Fix(h, i)
	}
	return ok
}

// remove deletes the element keyed by k.
func (h *indexedHeap[T]) remove(k graph.Handle) (T, bool) {
	i, ok := h.pos[k]
	if !ok {
		var zero T
		return zero, false
	}
	return heap.Remove(h, i).(T), true
}
