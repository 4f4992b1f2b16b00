// Package emufog turns a router-level network topology into a fog
// computing testbed: it separates the backbone from the edge, attaches
// devices to the edge and places a bounded number of fog nodes close to
// them.
//
// What does a run do?
//
//  1. Read a BRITE topology (reader/brite).
//  2. Classify the backbone of every autonomous system (backbone):
//     endpoints of cross-system links, nodes of above-mean degree, and
//     the nodes needed to connect the backbone of each system.
//  3. Attach devices of the configured types to every remaining edge
//     node (devices).
//  4. Place fog nodes greedily, cheapest cost per served device first,
//     within a latency threshold of the devices they serve (fog).
//  5. Assign addresses and write a MaxiNet experiment (pipeline,
//     export/maxinet).
//
// Packages:
//
//	graph/         systems, node arena with in-place variant conversion, edges, address pool
//	backbone/      three-step backbone classification and connectivity diagnostics
//	fog/           cost graph, greedy placement selector, concurrent per-system classifier
//	devices/       device assignment to edge nodes
//	builder/       deterministic topology constructors for tests and experiments
//	config/, log/  TOML/YAML configuration and zap logging
//	metrics/       Prometheus collectors of a run
//	pipeline/      the phases above in order
//	cmd/emufog/    command line
//
// Quick ASCII example, one system with devices on the outer nodes:
//
//	d ── E ── B ── B ── E ── d
//
// The inner nodes have degree above the mean and become backbone (B); the
// outer edge nodes (E) host the devices (d) and, with a small cost
// threshold, receive one fog node each.
//
// Usage:
//
//	emufog sample > emufog.toml
//	emufog run --config emufog.toml --input topology.brite --output experiment.py
package emufog
