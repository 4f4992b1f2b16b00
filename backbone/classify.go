package backbone

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emufog/emufog-sub000/graph"
)

// Report counts the nodes each step converted to the backbone.
type Report struct {
	CrossSystem int
	HighDegree  int
	Connector   int
}

// Total returns the number of conversions across all steps.
func (r Report) Total() int { return r.CrossSystem + r.HighDegree + r.Connector }

// Classify runs the three classification steps on g and mutates it in place.
// The first conversion error aborts the run; ctx cancellation is observed
// between systems and inside the connectivity walk.
func Classify(ctx context.Context, g *graph.Graph, opts ...Option) (Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var rep Report
	n, err := promoteCrossSystem(g)
	if err != nil {
		return rep, errors.WithMessage(err, "cross-system promotion")
	}
	rep.CrossSystem = n
	o.logger.Debug("Promoted cross-system endpoints", zap.Int("converted", n))

	systems := g.Systems()
	perSystem := make([]Report, len(systems))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.concurrency)
	for i, s := range systems {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hd, err := promoteHighDegree(g, s)
			if err != nil {
				return errors.WithMessagef(err, "high-degree promotion, as %d", s.ID())
			}
			cn, err := connect(ctx, g, s)
			if err != nil {
				return errors.WithMessagef(err, "connectivity repair, as %d", s.ID())
			}
			perSystem[i] = Report{HighDegree: hd, Connector: cn}
			o.logger.Debug("Classified system",
				zap.Int("as", s.ID()), zap.Int("high_degree", hd), zap.Int("connector", cn),
				zap.Int("backbone", s.CountBackbone()), zap.Int("edge", s.CountEdge()))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return rep, err
	}

	for _, r := range perSystem {
		rep.HighDegree += r.HighDegree
		rep.Connector += r.Connector
	}
	o.logger.Info("Backbone classified",
		zap.Int("systems", len(systems)),
		zap.Int("cross_system", rep.CrossSystem),
		zap.Int("high_degree", rep.HighDegree),
		zap.Int("connector", rep.Connector))

	return rep, nil
}
