// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Placement results, run parameters and the shared budget.

package fog

import (
	"math"
	"net/netip"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/emufog/emufog-sub000/graph"
)

// Params are the inputs of a placement run.
type Params struct {
	// FogTypes are the candidate containers in preference order; the first
	// of several equally cheap types wins.
	FogTypes []graph.FogType
	// CostThreshold is the maximum latency sum between a starting node and
	// a fog node serving it.
	CostThreshold float64
	// MaxFogNodes is the number of placements allowed across all systems.
	MaxFogNodes int
}

// Validate checks p for malformed values.
func (p Params) Validate() error {
	if math.IsNaN(p.CostThreshold) || p.CostThreshold < 0 {
		return errors.Wrapf(ErrInvalidThreshold, "%g", p.CostThreshold)
	}
	if p.MaxFogNodes < 0 {
		return errors.Wrapf(ErrInvalidBudget, "%d", p.MaxFogNodes)
	}
	if len(p.FogTypes) == 0 {
		return errors.Wrap(ErrNoFogType, "empty fog type list")
	}
	return nil
}

// Coverage is the number of devices of one starting node served by a
// placement.
type Coverage struct {
	StartID int
	Devices int
}

// Placement is one fog container on one node. A node may receive several
// placements if one container cannot serve every device reachable there.
type Placement struct {
	Node     graph.Handle
	NodeID   int
	System   int
	Type     graph.FogType
	Coverage []Coverage
	// Address is the address of the container, zero until the placement is
	// applied to the graph.
	Address netip.Addr
}

// Devices returns the number of devices the placement serves.
func (p Placement) Devices() int {
	n := 0
	for _, c := range p.Coverage {
		n += c.Devices
	}
	return n
}

// Result is the outcome of a placement run. Placements of a failed result
// are partial and must not be treated as a valid deployment.
type Result struct {
	Placements []Placement
	Success    bool
	// Reason is set on failure, e.g. ErrBudgetExhausted.
	Reason error
}

func newResult() *Result { return &Result{Success: true} }

// Fail marks r failed with reason. The first reason is kept.
func (r *Result) Fail(reason error) {
	r.Success = false
	if r.Reason == nil {
		r.Reason = reason
	}
}

// Merge appends the placements of other in order; the merged result fails
// if either input failed.
func (r *Result) Merge(other *Result) {
	r.Placements = append(r.Placements, other.Placements...)
	if !other.Success {
		r.Fail(other.Reason)
	}
}

// BySystem groups placements by system id, keeping their order.
func (r *Result) BySystem() map[int][]Placement {
	out := make(map[int][]Placement)
	for _, p := range r.Placements {
		out[p.System] = append(out[p.System], p)
	}
	return out
}

// Budget is the number of fog nodes that may still be placed. It is shared
// by concurrent per-system runs.
type Budget struct {
	remaining atomic.Int64
}

// NewBudget returns a budget of n fog nodes.
func NewBudget(n int) *Budget {
	b := &Budget{}
	b.remaining.Store(int64(n))
	return b
}

// Remaining returns the number of fog nodes left. The value may be stale
// under concurrent use.
func (b *Budget) Remaining() int {
	if r := b.remaining.Load(); r > 0 {
		return int(r)
	}
	return 0
}

// exhausted is the cheap pre-check before a candidate is popped.
func (b *Budget) exhausted() bool { return b.remaining.Load() <= 0 }

// take claims one fog node and reports whether the claim succeeded.
func (b *Budget) take() bool { return b.remaining.Add(-1) >= 0 }
