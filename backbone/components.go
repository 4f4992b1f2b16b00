package backbone

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/emufog/emufog-sub000/graph"
)

// Components returns the number of connected components of the subgraph of
// system as induced by its backbone nodes and intra-system edges. A system
// without backbone nodes, or an unknown system, has zero components.
func Components(g *graph.Graph, as int) int {
	if !g.HasSystem(as) {
		return 0
	}
	s := g.System(as)
	bb := s.BackboneNodes()
	if len(bb) == 0 {
		return 0
	}

	u := simple.NewUndirectedGraph()
	for _, h := range bb {
		u.AddNode(simple.Node(int64(h)))
	}
	for _, h := range bb {
		n := g.MustNode(h)
		for _, eh := range n.Edges() {
			o := g.MustEdge(eh).Other(h)
			on := g.MustNode(o)
			if on.System() != as || !on.IsBackbone() || o == h {
				continue
			}
			if !u.HasEdgeBetween(int64(h), int64(o)) {
				u.SetEdge(simple.Edge{F: simple.Node(int64(h)), T: simple.Node(int64(o))})
			}
		}
	}

	return len(topo.ConnectedComponents(u))
}
