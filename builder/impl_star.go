// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_star.go: implementation of Star(as, first, n) constructor.
//
// Contract:
//   • n ≥ 2 (center plus at least one leaf), else ErrTooFewVertices.
//   • Node first is the center; leaves first+1..first+n-1 in ascending order.
//   • Emits center-leaf edges in ascending leaf order.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a hub with n-1 spokes in system as.
func Star(as, first, n int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		if err := addNodes(g, methodStar, as, first, n); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodStar, first, first+i); err != nil {
				return err
			}
		}

		return nil
	}
}
