// SPDX-License-Identifier: MIT
//
// File: costgraph.go
// Role: Per-system cost graph between starting nodes and placement
// candidates.
// Determinism:
//   - Starting nodes are created in ascending node id before any expansion.
//   - Expansions run in ascending starting node id, so every candidate lists
//     its connections in that order.
//   - Equal tentative costs pop in ascending node id.

package fog

import (
	"math"
	"slices"

	"github.com/pkg/errors"

	"github.com/emufog/emufog-sub000/graph"
)

// connection is the cheapest known latency from a starting node.
type connection struct {
	start *startingNode
	cost  float64
}

// baseNode is a placement candidate.
type baseNode struct {
	node *graph.Node

	// conns keeps insertion order; index maps a starting node handle to its
	// position in conns.
	conns []connection
	index map[graph.Handle]int

	// Cached evaluation, valid while modified is false.
	modified bool
	fogType  *graph.FogType
	ratio    float64
	avgCost  float64

	// start is set if the candidate is itself a starting node.
	start *startingNode
}

func newBaseNode(n *graph.Node) *baseNode {
	return &baseNode{node: n, index: make(map[graph.Handle]int), modified: true}
}

func (b *baseNode) handle() graph.Handle { return b.node.Handle() }

func (b *baseNode) hasConnections() bool { return len(b.conns) > 0 }

func (b *baseNode) addConnection(s *startingNode, cost float64) {
	if i, ok := b.index[s.handle()]; ok {
		if cost < b.conns[i].cost {
			b.conns[i].cost = cost
			b.modified = true
		}
		return
	}
	b.index[s.handle()] = len(b.conns)
	b.conns = append(b.conns, connection{start: s, cost: cost})
	b.modified = true
}

func (b *baseNode) removeConnection(s *startingNode) bool {
	i, ok := b.index[s.handle()]
	if !ok {
		return false
	}
	b.conns = slices.Delete(b.conns, i, i+1)
	delete(b.index, s.handle())
	for j := i; j < len(b.conns); j++ {
		b.index[b.conns[j].start.handle()] = j
	}
	b.modified = true
	return true
}

// demand is the remaining device demand of all connected starting nodes.
func (b *baseNode) demand() int {
	d := 0
	for _, c := range b.conns {
		d += c.start.demand
	}
	return d
}

// startingNode is an edge node with devices attached. It is also a
// candidate through base, reachable from itself at cost zero.
type startingNode struct {
	base   *baseNode
	demand int
	// initial is the device count at creation.
	initial int

	reachable []*baseNode
	seen      map[graph.Handle]bool
}

func (s *startingNode) handle() graph.Handle { return s.base.handle() }

func (s *startingNode) id() int { return s.base.node.ID() }

func (s *startingNode) addReachable(b *baseNode) {
	if s.seen[b.handle()] {
		return
	}
	s.seen[b.handle()] = true
	s.reachable = append(s.reachable, b)
}

// CostGraph is the placement working set of one system. It is discarded
// after the run.
type CostGraph struct {
	system    int
	threshold float64

	bases  map[graph.Handle]*baseNode
	order  []*baseNode
	starts []*startingNode
}

// System returns the id of the system the graph was built for.
func (cg *CostGraph) System() int { return cg.system }

// StartingNodes returns the ids of the starting nodes in ascending order.
func (cg *CostGraph) StartingNodes() []int {
	out := make([]int, len(cg.starts))
	for i, s := range cg.starts {
		out[i] = s.id()
	}
	return out
}

// Candidates returns the ids of all candidates in discovery order.
func (cg *CostGraph) Candidates() []int {
	out := make([]int, len(cg.order))
	for i, b := range cg.order {
		out[i] = b.node.ID()
	}
	return out
}

// Cost returns the cheapest latency from starting node start to candidate
// node, and false if node is not reachable from start within the threshold.
func (cg *CostGraph) Cost(node, start graph.Handle) (float64, bool) {
	b, ok := cg.bases[node]
	if !ok {
		return 0, false
	}
	i, ok := b.index[start]
	if !ok {
		return 0, false
	}
	return b.conns[i].cost, true
}

// Demand returns the total device demand of all starting nodes.
func (cg *CostGraph) Demand() int {
	d := 0
	for _, s := range cg.starts {
		d += s.initial
	}
	return d
}

// BuildCostGraph computes the cost graph of system s for the given latency
// threshold.
//
// Complexity: O(S·(V+E)·log V) for S starting nodes.
func BuildCostGraph(g *graph.Graph, s *graph.System, threshold float64) (*CostGraph, error) {
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "%g", threshold)
	}
	cg := &CostGraph{
		system:    s.ID(),
		threshold: threshold,
		bases:     make(map[graph.Handle]*baseNode),
	}

	for _, h := range s.EdgeNodes() {
		n := g.MustNode(h)
		if !n.HasDevices() {
			continue
		}
		b := cg.base(n)
		st := &startingNode{
			base:    b,
			demand:  n.DeviceCount(),
			initial: n.DeviceCount(),
			seen:    make(map[graph.Handle]bool),
		}
		b.start = st
		cg.starts = append(cg.starts, st)
	}

	for _, st := range cg.starts {
		if err := cg.expand(g, st); err != nil {
			return nil, err
		}
	}

	return cg, nil
}

func (cg *CostGraph) base(n *graph.Node) *baseNode {
	if b, ok := cg.bases[n.Handle()]; ok {
		return b
	}
	b := newBaseNode(n)
	cg.bases[n.Handle()] = b
	cg.order = append(cg.order, b)
	return b
}

// tentative is a Dijkstra frontier entry.
type tentative struct {
	node *graph.Node
	cost float64
}

// expand runs Dijkstra from st and connects every node reached within the
// threshold.
func (cg *CostGraph) expand(g *graph.Graph, st *startingNode) error {
	pq := newIndexedHeap(
		func(t *tentative) graph.Handle { return t.node.Handle() },
		func(a, b *tentative) bool {
			if a.cost != b.cost {
				return a.cost < b.cost
			}
			return a.node.ID() < b.node.ID()
		},
	)
	settled := make(map[graph.Handle]bool)
	pq.push(&tentative{node: st.base.node, cost: 0})

	for {
		cur, ok := pq.pop()
		if !ok {
			return nil
		}
		settled[cur.node.Handle()] = true

		b := cg.base(cur.node)
		b.addConnection(st, cur.cost)
		st.addReachable(b)

		for _, eh := range cur.node.Edges() {
			e, err := g.Edge(eh)
			if err != nil {
				return err
			}
			nb := g.MustNode(e.Other(cur.node.Handle()))
			if nb.System() != cg.system || nb.IsDevice() || settled[nb.Handle()] {
				continue
			}
			cost := cur.cost + e.Latency
			if cost > cg.threshold {
				continue
			}
			relax(pq, nb, cost)
		}
	}
}

// relax records cost for nb if it is new or cheaper than the known one.
// Equal or higher costs leave the frontier untouched.
func relax(pq *indexedHeap[*tentative], nb *graph.Node, cost float64) {
	if i, ok := pq.pos[nb.Handle()]; ok {
		t := pq.items[i]
		if cost < t.cost {
			t.cost = cost
			pq.fix(nb.Handle())
		}
		return
	}
	pq.push(&tentative{node: nb, cost: cost})
}
