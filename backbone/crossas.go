package backbone

import "github.com/emufog/emufog-sub000/graph"

// promoteCrossSystem converts both endpoints of every cross-system edge.
func promoteCrossSystem(g *graph.Graph) (int, error) {
	converted := 0
	for _, eh := range g.Edges() {
		e := g.MustEdge(eh)
		from, to := g.MustNode(e.From), g.MustNode(e.To)
		if from.System() == to.System() {
			continue
		}
		for _, n := range [2]*graph.Node{from, to} {
			if n.IsBackbone() {
				continue
			}
			if err := g.ConvertToBackbone(n.System(), n.Handle()); err != nil {
				return converted, err
			}
			converted++
		}
	}

	return converted, nil
}
