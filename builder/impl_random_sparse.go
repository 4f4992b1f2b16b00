// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_random_sparse.go: Erdős–Rényi-style G(n,p) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices); p ∈ [0,1] (else ErrInvalidProbability).
//   • Requires cfg.rng (WithSeed/WithRand) unless p ∈ {0,1} (else ErrNeedRandSource).
//   • Adds nodes first..first+n-1, then scans pairs (i<j) in lexicographic
//     order and emits an edge iff rng.Float64() < p.
//   • The same seed and parameters yield the same graph.
//
// Complexity:
//   • Time: O(n + n²) Bernoulli trials.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const (
	methodRandomSparse = "RandomSparse"
	minRandomNodes     = 1
	probMin            = 0.0
	probMax            = 1.0
)

// RandomSparse returns a Constructor that samples G(n,p) inside system as.
func RandomSparse(as, first, n int, p float64) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < minRandomNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomNodes, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6g not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil && p != probMin && p != probMax {
			return fmt.Errorf("%s: rng is nil for p=%.6g: %w", methodRandomSparse, p, ErrNeedRandSource)
		}
		if err := addNodes(g, methodRandomSparse, as, first, n); err != nil {
			return err
		}
		if p == probMin {
			return nil
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if p != probMax && cfg.rng.Float64() >= p {
					continue
				}
				if err := addEdge(g, cfg, methodRandomSparse, first+i, first+j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
