// SPDX-License-Identifier: MIT

package fog

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emufog/emufog-sub000/graph"
)

// Option customizes Classify.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	concurrency int
	budget      *Budget
}

// WithLogger sets the logger for run and placement events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds the number of systems placed at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithBudget shares an existing budget instead of creating one from
// Params.MaxFogNodes.
func WithBudget(b *Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// Classify places fog nodes in every system of g. Systems run concurrently
// and share one budget. Results are merged in ascending system id; the
// merged result fails if any system run failed.
//
// Errors: invalid Params, ErrNoFogType, ErrInconsistent, ctx cancellation.
func Classify(ctx context.Context, g *graph.Graph, p Params, opts ...Option) (*Result, error) {
	o := options{logger: zap.NewNop(), concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	budget := o.budget
	if budget == nil {
		budget = NewBudget(p.MaxFogNodes)
	}

	systems := g.Systems()
	results := make([]*Result, len(systems))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)
	for i, s := range systems {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cg, err := BuildCostGraph(g, s, p.CostThreshold)
			if err != nil {
				return errors.WithMessagef(err, "as %d", s.ID())
			}
			res, err := Place(ctx, cg, p.FogTypes, budget, o.logger)
			if err != nil {
				return errors.WithMessagef(err, "as %d", s.ID())
			}
			o.logger.Debug("Placed system",
				zap.Int("as", s.ID()), zap.Int("starting_nodes", len(cg.starts)),
				zap.Int("candidates", len(cg.order)), zap.Int("placements", len(res.Placements)),
				zap.Bool("success", res.Success))
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := newResult()
	for _, r := range results {
		merged.Merge(r)
	}
	o.logger.Info("Fog placement finished",
		zap.Int("systems", len(systems)),
		zap.Int("placements", len(merged.Placements)),
		zap.Int("budget_left", budget.Remaining()),
		zap.Bool("success", merged.Success))

	return merged, nil
}
