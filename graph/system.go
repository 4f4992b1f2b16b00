// SPDX-License-Identifier: MIT

package graph

import (
	"slices"
	"sort"
)

// System is an autonomous system: three disjoint node collections keyed by
// node id. A System is created on first reference and lives as long as its
// Graph.
type System struct {
	id       int
	graph    *Graph
	edge     map[int]Handle
	backbone map[int]Handle
	device   map[int]Handle
}

func newSystem(g *Graph, id int) *System {
	return &System{
		id:       id,
		graph:    g,
		edge:     make(map[int]Handle),
		backbone: make(map[int]Handle),
		device:   make(map[int]Handle),
	}
}

// ID returns the system id.
func (s *System) ID() int { return s.id }

// EdgeNodes returns the handles of the system's edge nodes sorted by node id.
func (s *System) EdgeNodes() []Handle { return sortedHandles(s.edge) }

// BackboneNodes returns the handles of the system's backbone nodes sorted by
// node id.
func (s *System) BackboneNodes() []Handle { return sortedHandles(s.backbone) }

// DeviceNodes returns the handles of the system's device nodes sorted by node
// id.
func (s *System) DeviceNodes() []Handle { return sortedHandles(s.device) }

// RouterNodes returns edge and backbone handles together, sorted by node id.
func (s *System) RouterNodes() []Handle {
	ids := make([]int, 0, len(s.edge)+len(s.backbone))
	for id := range s.edge {
		ids = append(ids, id)
	}
	for id := range s.backbone {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Handle, len(ids))
	for i, id := range ids {
		if h, ok := s.edge[id]; ok {
			out[i] = h
		} else {
			out[i] = s.backbone[id]
		}
	}
	return out
}

// CountEdge returns the number of edge nodes.
func (s *System) CountEdge() int { return len(s.edge) }

// CountBackbone returns the number of backbone nodes.
func (s *System) CountBackbone() int { return len(s.backbone) }

// CountDevice returns the number of device nodes.
func (s *System) CountDevice() int { return len(s.device) }

// Contains reports whether node id belongs to this system in any variant.
func (s *System) Contains(id int) bool {
	if _, ok := s.edge[id]; ok {
		return true
	}
	if _, ok := s.backbone[id]; ok {
		return true
	}
	_, ok := s.device[id]
	return ok
}

func (s *System) collection(k Kind) map[int]Handle {
	switch k {
	case EdgeNode:
		return s.edge
	case BackboneNode:
		return s.backbone
	default:
		return s.device
	}
}

func sortedHandles(m map[int]Handle) []Handle {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Handle, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

// System returns the system with the given id, registering it on first
// reference.
func (g *Graph) System(id int) *System {
	g.mu.RLock()
	s, ok := g.systems[id]
	g.mu.RUnlock()
	if ok {
		return s
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok = g.systems[id]; ok {
		return s
	}
	s = newSystem(g, id)
	g.systems[id] = s

	return s
}

// HasSystem reports whether a system with the given id is registered.
func (g *Graph) HasSystem(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.systems[id]

	return ok
}

// Systems returns all registered systems sorted by id.
func (g *Graph) Systems() []*System {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*System, 0, len(g.systems))
	for _, s := range g.systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })

	return out
}
