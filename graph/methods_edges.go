// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle and queries.
// Determinism:
//   - Edges() returns handles sorted by edge id.
//   - A node's incident edges keep insertion order.

package graph

import (
	"sort"

	"github.com/pkg/errors"
)

// CreateEdge links two nodes already present in the graph.
//
// If one endpoint is an EdgeNode and the other a DeviceNode, the EdgeNode's
// device count grows by the device's scaling factor.
//
// Errors:
//   - ErrNegativeLatency, ErrNegativeBandwidth for negative metrics.
//   - ErrLoopNotAllowed if from == to.
//   - ErrNodeNotFound if either endpoint is unknown.
//   - ErrEdgeExists if id is already used.
//
// Complexity: O(1) amortized.
func (g *Graph) CreateEdge(id int, from, to Handle, latency, bandwidth float64) (EdgeHandle, error) {
	if latency < 0 {
		return -1, errors.Wrapf(ErrNegativeLatency, "edge %d latency %g", id, latency)
	}
	if bandwidth < 0 {
		return -1, errors.Wrapf(ErrNegativeBandwidth, "edge %d bandwidth %g", id, bandwidth)
	}
	if from == to {
		return -1, errors.Wrapf(ErrLoopNotAllowed, "edge %d", id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	a, err := g.nodeLocked(from)
	if err != nil {
		return -1, errors.Wrapf(err, "edge %d from", id)
	}
	b, err := g.nodeLocked(to)
	if err != nil {
		return -1, errors.Wrapf(err, "edge %d to", id)
	}
	if _, exists := g.edgeIndex[id]; exists {
		return -1, errors.Wrapf(ErrEdgeExists, "edge %d", id)
	}

	eh := EdgeHandle(len(g.edges))
	g.edges = append(g.edges, &Edge{
		Handle:    eh,
		ID:        id,
		From:      from,
		To:        to,
		Latency:   latency,
		Bandwidth: bandwidth,
	})
	g.edgeIndex[id] = eh
	if id > g.maxEdgeID {
		g.maxEdgeID = id
	}
	a.edges = append(a.edges, eh)
	b.edges = append(b.edges, eh)

	attachDevice(a, b)
	attachDevice(b, a)

	return eh, nil
}

func attachDevice(host, dev *Node) {
	if host.kind == EdgeNode && dev.kind == DeviceNode && dev.device != nil {
		host.deviceCount += dev.device.ScalingFactor
	}
}

// Edge resolves an edge handle.
func (g *Graph) Edge(eh EdgeHandle) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeLocked(eh)
}

// MustEdge resolves an edge handle and panics if it is unknown.
func (g *Graph) MustEdge(eh EdgeHandle) *Edge {
	e, err := g.Edge(eh)
	if err != nil {
		panic(err)
	}
	return e
}

func (g *Graph) edgeLocked(eh EdgeHandle) (*Edge, error) {
	if eh < 0 || int(eh) >= len(g.edges) {
		return nil, errors.Wrapf(ErrEdgeNotFound, "handle %d", eh)
	}
	return g.edges[eh], nil
}

// LookupEdge resolves an edge id to its handle.
func (g *Graph) LookupEdge(id int) (EdgeHandle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	eh, ok := g.edgeIndex[id]

	return eh, ok
}

// Edges returns all edge handles sorted by edge id.
func (g *Graph) Edges() []EdgeHandle {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]EdgeHandle, len(g.edges))
	for i := range g.edges {
		out[i] = EdgeHandle(i)
	}
	sort.Slice(out, func(i, j int) bool { return g.edges[out[i]].ID < g.edges[out[j]].ID })

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// NextEdgeID returns an id greater than every edge id in use.
func (g *Graph) NextEdgeID() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.maxEdgeID + 1
}

// IsCrossSystem reports whether the endpoints of eh belong to different
// autonomous systems.
func (g *Graph) IsCrossSystem(eh EdgeHandle) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, err := g.edgeLocked(eh)
	if err != nil {
		return false, err
	}
	return g.nodes[e.From].system != g.nodes[e.To].system, nil
}

// Neighbor returns the node on the other side of eh as seen from h.
func (g *Graph) Neighbor(eh EdgeHandle, h Handle) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, err := g.edgeLocked(eh)
	if err != nil {
		return nil, err
	}
	o := e.Other(h)
	if o == NoHandle {
		return nil, errors.Wrapf(ErrNodeNotFound, "handle %d is not an endpoint of edge %d", h, e.ID)
	}
	return g.nodes[o], nil
}

// Stats returns a snapshot of catalog sizes.
//
// Complexity: O(V+E).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := Stats{
		Systems:        len(g.systems),
		Edges:          len(g.edges),
		AllocatedAddrs: g.pool.Allocated(),
	}
	for _, n := range g.nodes {
		switch n.kind {
		case EdgeNode:
			st.EdgeNodes++
		case BackboneNode:
			st.BackboneNodes++
		case DeviceNode:
			st.DeviceNodes++
		}
	}
	for _, e := range g.edges {
		if g.nodes[e.From].system != g.nodes[e.To].system {
			st.CrossSystem++
		}
	}

	return st
}
