// Package backbone promotes topology nodes to the network backbone.
//
// Classification runs three ordered steps over a graph.Graph:
//
//  1. Cross-system promotion: both endpoints of every edge that joins two
//     autonomous systems become backbone nodes.
//  2. High-degree promotion: per system, every edge node whose degree is
//     strictly greater than the mean degree of the system's edge and
//     backbone nodes becomes a backbone node.
//  3. Connectivity repair: per system, a breadth-first walk from the
//     lowest-id backbone node over intra-system edges converts the edge
//     nodes that separate backbone islands, so that the backbone nodes of a
//     connected system form one connected subgraph.
//
// Step 1 runs sequentially. Steps 2 and 3 run as one task per system;
// systems share no nodes after step 1, so tasks need no coordination beyond
// the graph's own locking.
//
// Components reports the number of connected components of a system's
// backbone subgraph and is used to verify the result.
package backbone
