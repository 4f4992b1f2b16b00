// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_path.go - implementation of Path(as, first, n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Adds edge nodes first..first+n-1 to system as in ascending order.
//   - Emits edges (i-1) - i for i=1..n-1 in stable increasing order.
//
// Complexity:
//   - Time: O(n) nodes + O(n-1) edges.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that builds a line of n edge nodes in system as.
func Path(as, first, n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		if err := addNodes(g, methodPath, as, first, n); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodPath, first+i-1, first+i); err != nil {
				return err
			}
		}

		return nil
	}
}
