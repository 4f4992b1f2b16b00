// SPDX-License-Identifier: MIT
//
// File: selector.go
// Role: Greedy fog placement over one CostGraph.
// Stages:
//   1. Evaluate every candidate and heap them.
//   2. Pop the cheapest candidate while the budget allows, place it, consume
//      demand and drop fully covered starting nodes.
//   3. Re-evaluate modified candidates, drop the disconnected ones, repair
//      heap positions by handle.

package fog

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/emufog/emufog-sub000/graph"
)

// bestFogType returns the type with the lowest cost per covered device for
// the given demand, and that ratio. The first of equally cheap types wins.
func bestFogType(types []graph.FogType, demand int) (*graph.FogType, float64, error) {
	var (
		best  *graph.FogType
		ratio float64
	)
	for i := range types {
		covered := min(demand, types[i].MaxClients)
		if covered <= 0 {
			continue
		}
		r := types[i].Costs / float64(covered)
		if best == nil || r < ratio {
			best, ratio = &types[i], r
		}
	}
	if best == nil {
		return nil, 0, errors.Wrapf(ErrNoFogType, "demand %d, %d types", demand, len(types))
	}
	return best, ratio, nil
}

// evaluate refreshes the cached fog type, ratio and average connection cost
// of b if it is modified.
func evaluate(b *baseNode, types []graph.FogType) error {
	if !b.modified {
		return nil
	}
	if !b.hasConnections() {
		return errors.Wrapf(ErrInconsistent, "node %d has no connections", b.node.ID())
	}
	ft, ratio, err := bestFogType(types, b.demand())
	if err != nil {
		return errors.WithMessagef(err, "node %d", b.node.ID())
	}
	sum := 0.0
	for _, c := range b.conns {
		sum += c.cost
	}
	b.fogType = ft
	b.ratio = ratio
	b.avgCost = sum / float64(len(b.conns))
	b.modified = false

	return nil
}

// cheaper orders candidates by cost per device, then average connection
// cost, then node id.
func cheaper(a, b *baseNode) bool {
	if a.ratio != b.ratio {
		return a.ratio < b.ratio
	}
	if a.avgCost != b.avgCost {
		return a.avgCost < b.avgCost
	}
	return a.node.ID() < b.node.ID()
}

// selector holds the mutable state of one placement run.
type selector struct {
	cg     *CostGraph
	types  []graph.FogType
	budget *Budget
	logger *zap.Logger

	pq  *indexedHeap[*baseNode]
	res *Result
}

// Place runs the greedy selector on cg. Budget exhaustion yields a failed
// result; ErrNoFogType and ErrInconsistent abort the run with an error.
func Place(ctx context.Context, cg *CostGraph, types []graph.FogType, budget *Budget, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sel := &selector{
		cg:     cg,
		types:  types,
		budget: budget,
		logger: logger.With(zap.Int("as", cg.system)),
		pq:     newIndexedHeap((*baseNode).handle, cheaper),
		res:    newResult(),
	}
	if err := sel.init(); err != nil {
		return nil, err
	}
	if err := sel.run(ctx); err != nil {
		return nil, err
	}
	return sel.res, nil
}

func (sel *selector) init() error {
	for _, b := range sel.cg.order {
		if !b.hasConnections() {
			continue
		}
		if err := evaluate(b, sel.types); err != nil {
			return err
		}
		sel.pq.push(b)
	}
	return nil
}

func (sel *selector) run(ctx context.Context) error {
	for sel.pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sel.budget.exhausted() {
			sel.exhaust()
			return nil
		}
		b, ok := sel.pq.pop()
		if !ok {
			return errors.Wrap(ErrInconsistent, "empty heap")
		}
		if !sel.budget.take() {
			sel.exhaust()
			return nil
		}
		if err := sel.place(b); err != nil {
			return err
		}
	}

	for _, st := range sel.cg.starts {
		if st.demand > 0 {
			return errors.Wrapf(ErrInconsistent, "starting node %d has %d devices left", st.id(), st.demand)
		}
	}
	return nil
}

func (sel *selector) exhaust() {
	left := 0
	for _, st := range sel.cg.starts {
		left += st.demand
	}
	sel.logger.Info("Fog node budget exhausted", zap.Int("uncovered", left),
		zap.Int("placed", len(sel.res.Placements)))
	sel.res.Fail(errors.Wrapf(ErrBudgetExhausted, "as %d, %d devices uncovered", sel.cg.system, left))
}

// place commits a fog node at b and repairs the candidates it affects.
func (sel *selector) place(b *baseNode) error {
	if err := evaluate(b, sel.types); err != nil {
		return err
	}
	ft := b.fogType

	covering := slices.Clone(b.conns)
	slices.SortStableFunc(covering, func(x, y connection) int {
		switch {
		case x.cost < y.cost:
			return -1
		case x.cost > y.cost:
			return 1
		default:
			return 0
		}
	})

	capacity := ft.MaxClients
	var (
		coverage []Coverage
		touched  []*startingNode
		covered  []*startingNode
	)
	for _, c := range covering {
		if capacity == 0 {
			break
		}
		take := min(capacity, c.start.demand)
		if take <= 0 {
			return errors.Wrapf(ErrInconsistent, "starting node %d connected without demand", c.start.id())
		}
		c.start.demand -= take
		capacity -= take
		coverage = append(coverage, Coverage{StartID: c.start.id(), Devices: take})
		touched = append(touched, c.start)
		if c.start.demand == 0 {
			covered = append(covered, c.start)
		}
	}
	if len(coverage) == 0 {
		return errors.Wrapf(ErrInconsistent, "node %d covers nothing", b.node.ID())
	}

	sel.res.Placements = append(sel.res.Placements, Placement{
		Node:     b.handle(),
		NodeID:   b.node.ID(),
		System:   sel.cg.system,
		Type:     *ft,
		Coverage: coverage,
	})
	sel.logger.Debug("Placed fog node",
		zap.Int("node", b.node.ID()), zap.Int("fog_type", ft.ID),
		zap.Int("devices", ft.MaxClients-capacity), zap.Int("fully_covered", len(covered)))

	b.modified = true
	affected := []*baseNode{b}
	for _, st := range touched {
		for _, r := range st.reachable {
			r.modified = true
			affected = append(affected, r)
		}
	}
	for _, st := range covered {
		for _, r := range st.reachable {
			r.removeConnection(st)
		}
	}

	return sel.repair(b, affected)
}

// repair re-evaluates the affected candidates. Disconnected ones leave the
// heap; the placed candidate is re-admitted while it still has connections.
func (sel *selector) repair(placed *baseNode, affected []*baseNode) error {
	done := make(map[graph.Handle]bool, len(affected))
	for _, r := range affected {
		if done[r.handle()] {
			continue
		}
		done[r.handle()] = true

		if !r.hasConnections() {
			sel.pq.remove(r.handle())
			continue
		}
		if err := evaluate(r, sel.types); err != nil {
			return err
		}
		if sel.pq.fix(r.handle()) {
			continue
		}
		if r == placed {
			sel.pq.push(r)
		}
	}
	return nil
}
