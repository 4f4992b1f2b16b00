// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_cycle.go: implementation of Cycle(as, first, n) constructor.
//
// Contract:
//   • n ≥ 3 (else ErrTooFewVertices).
//   • Emits edges in stable order i - (i+1)%n for i=0..n-1.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds a ring of n edge nodes in system as.
func Cycle(as, first, n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		if err := addNodes(g, methodCycle, as, first, n); err != nil {
			return err
		}
		// for i==n-1, connect to first to close the ring.
		for i := 0; i < n; i++ {
			if err := addEdge(g, cfg, methodCycle, first+i, first+(i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}
