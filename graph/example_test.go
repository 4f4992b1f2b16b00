// SPDX-License-Identifier: MIT

package graph_test

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

// ExampleGraph_ConvertToBackbone shows that edges observe a conversion
// without being re-created.
func ExampleGraph_ConvertToBackbone() {
	g := graph.NewGraph()
	g.System(0)
	a, _ := g.CreateEdgeNode(1, 0)
	b, _ := g.CreateEdgeNode(2, 0)
	eh, _ := g.CreateEdge(1, a, b, 1.5, 100)

	_ = g.ConvertToBackbone(0, a)

	n, _ := g.Neighbor(eh, b)
	fmt.Println(n)
	// Output: backbone(1@as0)
}
