// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_grid.go: implementation of Grid(as, first, rows, cols) constructor.
//
// Contract:
//   • rows ≥ 1, cols ≥ 1 and rows*cols ≥ 2 (else ErrTooFewVertices).
//   • Node (r,c) gets id first + r*cols + c (row-major).
//   • For every cell in row-major order emits the right edge then the down
//     edge, if present.
//
// Complexity:
//   • Time: O(rows*cols).

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const methodGrid = "Grid"

// Grid returns a Constructor that builds a rows×cols 4-neighbour lattice in
// system as.
func Grid(as, first, rows, cols int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if rows < 1 || cols < 1 || rows*cols < minPathNodes {
			return fmt.Errorf("%s: rows=%d, cols=%d: %w", methodGrid, rows, cols, ErrTooFewVertices)
		}
		if err := addNodes(g, methodGrid, as, first, rows*cols); err != nil {
			return err
		}
		id := func(r, c int) int { return first + r*cols + c }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := addEdge(g, cfg, methodGrid, id(r, c), id(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := addEdge(g, cfg, methodGrid, id(r, c), id(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
