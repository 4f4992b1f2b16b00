// SPDX-License-Identifier: MIT

package fog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog-sub000/graph"
)

type item struct {
	h graph.Handle
	p int
}

func newItemHeap() *indexedHeap[*item] {
	return newIndexedHeap(
		func(it *item) graph.Handle { return it.h },
		func(a, b *item) bool {
			if a.p != b.p {
				return a.p < b.p
			}
			return a.h < b.h
		},
	)
}

func drain(h *indexedHeap[*item]) []graph.Handle {
	var out []graph.Handle
	for {
		it, ok := h.pop()
		if !ok {
			return out
		}
		out = append(out, it.h)
	}
}

func TestIndexedHeap(t *testing.T) {
	t.Run("pops in priority order with handle tie-break", func(t *testing.T) {
		h := newItemHeap()
		for i, p := range []int{5, 1, 3, 1, 4} {
			h.push(&item{h: graph.Handle(i), p: p})
		}
		assert.Equal(t, []graph.Handle{1, 3, 2, 4, 0}, drain(h))
		_, ok := h.pop()
		assert.False(t, ok)
	})

	t.Run("fix repositions by handle", func(t *testing.T) {
		h := newItemHeap()
		items := []*item{{0, 1}, {1, 2}, {2, 3}}
		for _, it := range items {
			h.push(it)
		}
		items[2].p = 0
		require.True(t, h.fix(2))
		items[0].p = 9
		require.True(t, h.fix(0))
		assert.False(t, h.fix(7))
		assert.Equal(t, []graph.Handle{2, 1, 0}, drain(h))
	})

	t.Run("push replaces and remove deletes", func(t *testing.T) {
		h := newItemHeap()
		h.push(&item{0, 1})
		h.push(&item{1, 2})
		h.push(&item{0, 3})
		assert.Equal(t, 2, h.Len())

		it, ok := h.remove(1)
		require.True(t, ok)
		assert.Equal(t, 2, it.p)
		assert.False(t, h.contains(1))
		_, ok = h.remove(1)
		assert.False(t, ok)

		got, ok := h.pop()
		require.True(t, ok)
		assert.Equal(t, 3, got.p)
		assert.Empty(t, h.pos)
	})
}
