// SPDX-License-Identifier: MIT

// Package builder assembles deterministic graph.Graph topologies for tests,
// examples and benchmarks.
//
// A topology is composed from Constructors applied in order by BuildGraph:
//
//	g, err := builder.BuildGraph(nil,
//	    []builder.BuilderOption{builder.WithSeed(7), builder.WithLatencyFn(builder.ConstantWeightFn(2))},
//	    builder.Path(0, 0, 10),         // as 0: edge nodes 0..9 in a line
//	    builder.Cycle(1, 100, 3),       // as 1: edge nodes 100..102 in a ring
//	    builder.Link(9, 100),           // inter-system link between node 9 and node 100
//	)
//
// Every constructor registers its system, creates EdgeNodes with ids
// first..first+n-1 and numbers edges with Graph.NextEdgeID, so the same
// inputs always yield the same graph. Latencies come from the configured
// WeightFn; bandwidths are constant.
package builder
