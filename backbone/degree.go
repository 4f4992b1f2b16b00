package backbone

import (
	"gonum.org/v1/gonum/stat"

	"github.com/emufog/emufog-sub000/graph"
)

// meanDegree returns the mean degree over the system's edge and backbone
// nodes, and false for a system without such nodes.
func meanDegree(g *graph.Graph, s *graph.System) (float64, bool) {
	routers := s.RouterNodes()
	if len(routers) == 0 {
		return 0, false
	}
	degrees := make([]float64, len(routers))
	for i, h := range routers {
		degrees[i] = float64(g.MustNode(h).Degree())
	}
	return stat.Mean(degrees, nil), true
}

// promoteHighDegree converts every edge node of s whose degree exceeds the
// system mean. The mean is taken once before any conversion.
func promoteHighDegree(g *graph.Graph, s *graph.System) (int, error) {
	mean, ok := meanDegree(g, s)
	if !ok {
		return 0, nil
	}
	converted := 0
	for _, h := range s.EdgeNodes() {
		n := g.MustNode(h)
		if float64(n.Degree()) <= mean {
			continue
		}
		if err := g.ConvertToBackbone(s.ID(), h); err != nil {
			return converted, err
		}
		converted++
	}

	return converted, nil
}
