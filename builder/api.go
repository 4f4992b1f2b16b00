// SPDX-License-Identifier: MIT
// Package: builder
//
// api.go - public entry point of the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Constructors are implemented in impl_*.go.
//   - Same inputs, options, seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

// Constructor applies a deterministic mutation to g using the resolved
// builderConfig. Constructors validate parameters first and return sentinel
// errors wrapped with context; they never panic.
type Constructor func(g *graph.Graph, cfg builderConfig) error

// BuildGraph creates a graph with gopts, resolves the builder configuration
// from bopts and applies cons in order. The first constructor error is
// returned wrapped as "BuildGraph: %w"; no partial cleanup is attempted.
func BuildGraph(gopts []graph.GraphOption, bopts []BuilderOption, cons ...Constructor) (*graph.Graph, error) {
	g := graph.NewGraph(gopts...)
	if err := Apply(g, bopts, cons...); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply runs cons against an existing graph.
func Apply(g *graph.Graph, bopts []BuilderOption, cons ...Constructor) error {
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return fmt.Errorf("BuildGraph: %w", err)
		}
	}
	return nil
}

// addEdge links two node ids with the next free edge id and a latency drawn
// from cfg.
func addEdge(g *graph.Graph, cfg builderConfig, method string, u, v int) error {
	hu, ok := g.Lookup(u)
	if !ok {
		return fmt.Errorf("%s: node %d: %w", method, u, graph.ErrNodeNotFound)
	}
	hv, ok := g.Lookup(v)
	if !ok {
		return fmt.Errorf("%s: node %d: %w", method, v, graph.ErrNodeNotFound)
	}
	lat := cfg.latencyFn(cfg.rng)
	if _, err := g.CreateEdge(g.NextEdgeID(), hu, hv, lat, cfg.bandwidth); err != nil {
		return fmt.Errorf("%s: CreateEdge(%d→%d, latency=%g): %w", method, u, v, lat, err)
	}
	return nil
}

// addNodes registers system as and creates edge nodes first..first+n-1.
func addNodes(g *graph.Graph, method string, as, first, n int) error {
	g.System(as)
	for i := 0; i < n; i++ {
		if _, err := g.CreateEdgeNode(first+i, as); err != nil {
			return fmt.Errorf("%s: CreateEdgeNode(%d): %w", method, first+i, err)
		}
	}
	return nil
}
