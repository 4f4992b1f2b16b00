// SPDX-License-Identifier: MIT

package fog_test

import (
	"context"
	"fmt"

	"github.com/emufog/emufog-sub000/builder"
	"github.com/emufog/emufog-sub000/fog"
	"github.com/emufog/emufog-sub000/graph"
)

// ExampleClassify places one container next to two devices on a line of
// three nodes with unit latencies.
func ExampleClassify() {
	camera := graph.DeviceType{Container: graph.Container{Name: "camera", Tag: "latest"}, ScalingFactor: 1}
	g, err := builder.BuildGraph(nil, nil,
		builder.Path(0, 0, 3),
		builder.Devices(0, 10, 2, camera),
	)
	if err != nil {
		panic(err)
	}

	res, err := fog.Classify(context.Background(), g, fog.Params{
		FogTypes: []graph.FogType{
			{Container: graph.Container{Name: "fog", Tag: "latest"}, ID: 1, MaxClients: 4, Costs: 2},
		},
		CostThreshold: 1,
		MaxFogNodes:   1,
	})
	if err != nil {
		panic(err)
	}
	for _, p := range res.Placements {
		fmt.Printf("node %d: %s serves %d devices\n", p.NodeID, p.Type.Image(), p.Devices())
	}
	fmt.Println("success:", res.Success)
	// Output:
	// node 0: fog:latest serves 2 devices
	// success: true
}
