// SPDX-License-Identifier: MIT

// Package fog places fog-node containers on a classified topology.
//
// Placement works per autonomous system in two phases:
//
//   - BuildCostGraph runs a threshold-bounded Dijkstra expansion from every
//     edge node that has devices attached (a starting node) and records, for
//     every node reached, the cheapest latency to each starting node. Device
//     nodes are never expanded and cross-system edges are never followed.
//   - A greedy selector repeatedly places the candidate with the lowest
//     deployment cost per covered device, consumes the demand of the
//     starting nodes it covers in ascending cost order, and repairs the
//     priority of every candidate whose connections changed.
//
// Classify runs both phases for every system concurrently. The systems share
// only the global fog-node Budget, an atomically decremented counter; a
// stale budget read costs at most one discarded placement attempt and never
// lets the number of placements exceed the budget.
//
// The selector is a greedy heuristic. Ties are broken deterministically:
// candidates by (cost per device, average connection cost, node id), fog
// types by input order, coverage by encounter order.
package fog
