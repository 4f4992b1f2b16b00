package backbone

import (
	"context"

	"github.com/emufog/emufog-sub000/graph"
)

// connector holds the mutable state of one connectivity-repair walk.
type connector struct {
	g       *graph.Graph
	s       *graph.System
	queue   []*graph.Node
	visited map[int]bool
	pred    map[int]*graph.Node
	// converted counts edge nodes turned into backbone nodes.
	converted int
}

// connect walks system s breadth-first from its lowest-id backbone node over
// intra-system edges, skipping devices. A backbone node reached through an
// edge-node predecessor has the predecessor chain converted up to the first
// non-edge node. A node's recorded predecessor is replaced only by a
// backbone node and only while the recorded one is an edge node.
func connect(ctx context.Context, g *graph.Graph, s *graph.System) (int, error) {
	bb := s.BackboneNodes()
	if len(bb) == 0 {
		return 0, nil
	}
	n := s.CountEdge() + s.CountBackbone()
	c := &connector{
		g:       g,
		s:       s,
		queue:   make([]*graph.Node, 0, n),
		visited: make(map[int]bool, n),
		pred:    make(map[int]*graph.Node, n),
	}

	start := g.MustNode(bb[0])
	c.visited[start.ID()] = true
	c.queue = append(c.queue, start)

	for len(c.queue) > 0 {
		select {
		case <-ctx.Done():
			return c.converted, ctx.Err()
		default:
		}

		node := c.queue[0]
		c.queue = c.queue[1:]

		if node.IsBackbone() {
			if p := c.pred[node.ID()]; p != nil && p.IsEdge() {
				if err := c.convertChain(p); err != nil {
					return c.converted, err
				}
			}
		}
		if err := c.enqueueNeighbors(node); err != nil {
			return c.converted, err
		}
	}

	return c.converted, nil
}

// convertChain converts edge nodes from p backwards along the predecessor
// chain until a non-edge node or the walk's root is reached.
func (c *connector) convertChain(p *graph.Node) error {
	for p != nil && p.IsEdge() {
		if err := c.g.ConvertToBackbone(c.s.ID(), p.Handle()); err != nil {
			return err
		}
		c.converted++
		p = c.pred[p.ID()]
	}
	return nil
}

func (c *connector) enqueueNeighbors(node *graph.Node) error {
	for _, eh := range node.Edges() {
		nb, err := c.g.Neighbor(eh, node.Handle())
		if err != nil {
			return err
		}
		if nb.System() != c.s.ID() || nb.IsDevice() {
			continue
		}
		if !c.visited[nb.ID()] {
			c.visited[nb.ID()] = true
			c.pred[nb.ID()] = node
			c.queue = append(c.queue, nb)
			continue
		}
		if p := c.pred[nb.ID()]; p != nil && p.IsEdge() && node.IsBackbone() {
			c.pred[nb.ID()] = node
		}
	}
	return nil
}
