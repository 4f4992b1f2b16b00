// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle, variant conversion and node queries.
// Concurrency:
//   - Creation under mu write lock.
//   - Conversion under mu read lock; the caller partitions work by system.

package graph

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CreateEdgeNode adds an EdgeNode with the given id to system as.
//
// Errors:
//   - ErrSystemNotFound if as is not registered.
//   - ErrNodeExists if id is already used anywhere in the graph.
func (g *Graph) CreateEdgeNode(id, as int) (Handle, error) {
	return g.createNode(id, as, EdgeNode, nil)
}

// CreateBackboneNode adds a BackboneNode with the given id to system as.
// Errors as for CreateEdgeNode.
func (g *Graph) CreateBackboneNode(id, as int) (Handle, error) {
	return g.createNode(id, as, BackboneNode, nil)
}

// CreateDeviceNode adds a DeviceNode of type dt with the given id to system
// as. In addition to the CreateEdgeNode errors it returns ErrBadDeviceType if
// dt.ScalingFactor < 1.
func (g *Graph) CreateDeviceNode(id, as int, dt DeviceType) (Handle, error) {
	if dt.ScalingFactor < 1 {
		return NoHandle, errors.Wrapf(ErrBadDeviceType, "scaling factor %d", dt.ScalingFactor)
	}
	return g.createNode(id, as, DeviceNode, &dt)
}

func (g *Graph) createNode(id, as int, k Kind, dt *DeviceType) (Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.systems[as]
	if !ok {
		return NoHandle, errors.Wrapf(ErrSystemNotFound, "node %d, as %d", id, as)
	}
	if _, exists := g.nodeIndex[id]; exists {
		return NoHandle, errors.Wrapf(ErrNodeExists, "node %d", id)
	}

	h := Handle(len(g.nodes))
	n := &Node{
		handle: h,
		id:     id,
		system: as,
		kind:   k,
		device: dt,
	}
	g.nodes = append(g.nodes, n)
	g.nodeIndex[id] = h
	s.collection(k)[id] = h
	if id > g.maxNodeID {
		g.maxNodeID = id
	}

	return h, nil
}

// ConvertToBackbone converts the node to a BackboneNode in place.
func (g *Graph) ConvertToBackbone(as int, h Handle) error {
	return g.convert(as, h, BackboneNode, nil)
}

// ConvertToEdge converts the node to an EdgeNode in place. The device count
// starts at zero.
func (g *Graph) ConvertToEdge(as int, h Handle) error {
	return g.convert(as, h, EdgeNode, nil)
}

// ConvertToDevice converts the node to a DeviceNode of type dt in place.
func (g *Graph) ConvertToDevice(as int, h Handle, dt DeviceType) error {
	if dt.ScalingFactor < 1 {
		return errors.Wrapf(ErrBadDeviceType, "scaling factor %d", dt.ScalingFactor)
	}
	return g.convert(as, h, DeviceNode, &dt)
}

// convert replaces the variant payload of slot h. Id, system, edge list and
// emulation assignment carry over; the slot pointer and handle are unchanged,
// so edges keep resolving to the node. Converting to the current variant is a
// no-op. An EdgeNode's device count is derived from its attached devices, so
// it is recomputed for h and, when a device appears or disappears, for its
// neighbours.
//
// Complexity: O(deg(h)) plus the degrees of its neighbours when a device
// variant is involved.
func (g *Graph) convert(as int, h Handle, k Kind, dt *DeviceType) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.nodeLocked(h)
	if err != nil {
		return err
	}
	if n.system != as {
		return errors.Wrapf(ErrWrongSystem, "node %d belongs to as %d, not %d", n.id, n.system, as)
	}
	if n.kind == k {
		return nil
	}
	s := g.systems[as]

	delete(s.collection(n.kind), n.id)
	from := n.kind
	n.kind = k
	n.device = dt
	s.collection(k)[n.id] = h

	g.recountLocked(n)
	if from == DeviceNode || k == DeviceNode {
		for _, eh := range n.edges {
			g.recountLocked(g.nodes[g.edges[eh].Other(h)])
		}
	}

	g.logger.Debug("Converted node",
		zap.Int("node", n.id), zap.Int("as", as),
		zap.Stringer("from", from), zap.Stringer("to", k))

	return nil
}

// recountLocked recomputes the device count of n from its device neighbours.
// Only EdgeNodes carry a count.
func (g *Graph) recountLocked(n *Node) {
	n.deviceCount = 0
	if n.kind != EdgeNode {
		return
	}
	for _, eh := range n.edges {
		attachDevice(n, g.nodes[g.edges[eh].Other(n.handle)])
	}
}

// Node resolves a handle to its slot.
func (g *Graph) Node(h Handle) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodeLocked(h)
}

// MustNode resolves a handle and panics if it is unknown. Intended for
// algorithm code iterating handles obtained from the same graph.
func (g *Graph) MustNode(h Handle) *Node {
	n, err := g.Node(h)
	if err != nil {
		panic(err)
	}
	return n
}

func (g *Graph) nodeLocked(h Handle) (*Node, error) {
	if h < 0 || int(h) >= len(g.nodes) {
		return nil, errors.Wrapf(ErrNodeNotFound, "handle %d", h)
	}
	return g.nodes[h], nil
}

// Lookup resolves a topology node id to its handle.
func (g *Graph) Lookup(id int) (Handle, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIndex[id]

	return h, ok
}

// Nodes returns all node handles sorted by node id.
func (g *Graph) Nodes() []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Handle, len(g.nodes))
	for i := range g.nodes {
		out[i] = Handle(i)
	}
	sort.Slice(out, func(i, j int) bool { return g.nodes[out[i]].id < g.nodes[out[j]].id })

	return out
}

// NodeCount returns the number of nodes in all variants.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// NextNodeID returns an id greater than every node id in use.
func (g *Graph) NextNodeID() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.maxNodeID + 1
}

// Degree returns the number of edges incident to h.
func (g *Graph) Degree(h Handle) (int, error) {
	n, err := g.Node(h)
	if err != nil {
		return 0, err
	}
	return n.Degree(), nil
}

// Assign sets the emulation assignment of h, replacing any previous one.
func (g *Graph) Assign(h Handle, e Emulation) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.nodeLocked(h)
	if err != nil {
		return err
	}
	n.emulation = &e

	return nil
}
