// Package pipeline runs the emufog phases on a topology: backbone
// classification, device assignment, fog placement and address assignment
// of the placed containers.
package pipeline

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/emufog/emufog-sub000/backbone"
	"github.com/emufog/emufog-sub000/config"
	"github.com/emufog/emufog-sub000/devices"
	"github.com/emufog/emufog-sub000/fog"
	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/log"
	"github.com/emufog/emufog-sub000/metrics"
)

// Option customizes Run.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// WithLogger overrides the logger taken from the context.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records phase durations and outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithConcurrency bounds the number of systems processed at once.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// Outcome is the result of a run.
type Outcome struct {
	Backbone backbone.Report
	Devices  devices.Report
	Result   *fog.Result
}

// GraphOptions returns the graph options implied by cfg. Pass them to the
// topology reader so that addresses come from the configured prefix.
func GraphOptions(cfg *config.Config, logger *zap.Logger) ([]graph.GraphOption, error) {
	pool, err := graph.NewAddressPool(cfg.Prefix())
	if err != nil {
		return nil, err
	}
	return []graph.GraphOption{graph.WithAddressPool(pool), graph.WithLogger(logger)}, nil
}

// FogParams returns the placement parameters of cfg.
func FogParams(cfg *config.Config) fog.Params {
	return fog.Params{
		FogTypes:      cfg.Fogs(),
		CostThreshold: cfg.CostThreshold,
		MaxFogNodes:   cfg.MaxFogNodes,
	}
}

// Run classifies g, attaches devices, places fog nodes and assigns them
// addresses. g is mutated in place.
//
// Exhausting the fog node budget or the address pool yields a failed
// result, not an error. Invalid input, ErrNoFogType and ErrInconsistent are
// returned as errors.
func Run(ctx context.Context, g *graph.Graph, cfg *config.Config, opts ...Option) (*Outcome, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.FromCtx(ctx)
	}
	if o.metrics == nil {
		m, err := metrics.New(nil)
		if err != nil {
			return nil, errors.WithMessage(err, "creating metrics")
		}
		o.metrics = m
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	out := &Outcome{}

	start := time.Now()
	rep, err := backbone.Classify(ctx, g,
		backbone.WithLogger(o.logger), backbone.WithConcurrency(o.concurrency))
	if err != nil {
		return nil, errors.WithMessage(err, "classifying backbone")
	}
	out.Backbone = rep
	o.metrics.Conversions.WithLabelValues(metrics.StepCrossSystem).Add(float64(rep.CrossSystem))
	o.metrics.Conversions.WithLabelValues(metrics.StepHighDegree).Add(float64(rep.HighDegree))
	o.metrics.Conversions.WithLabelValues(metrics.StepConnector).Add(float64(rep.Connector))
	o.observe(metrics.PhaseBackbone, start)

	start = time.Now()
	dopts := []devices.Option{
		devices.WithLink(cfg.HostDeviceLatency, cfg.HostDeviceBandwidth),
		devices.WithLogger(o.logger),
	}
	if cfg.RandomDeviceCount {
		dopts = append(dopts, devices.WithSeed(cfg.Seed))
	}
	drep, err := devices.Assign(g, cfg.Devices(), dopts...)
	out.Devices = drep
	o.metrics.Devices.Add(float64(drep.Devices))
	o.observe(metrics.PhaseDevices, start)
	if err != nil {
		if errors.Is(err, graph.ErrAddressesExhausted) {
			out.Result = &fog.Result{}
			out.Result.Fail(err)
			o.metrics.FailedRuns.Inc()
			return out, nil
		}
		return nil, errors.WithMessage(err, "assigning devices")
	}

	start = time.Now()
	budget := fog.NewBudget(cfg.MaxFogNodes)
	res, err := fog.Classify(ctx, g, FogParams(cfg),
		fog.WithLogger(o.logger), fog.WithConcurrency(o.concurrency), fog.WithBudget(budget))
	if err != nil {
		return nil, errors.WithMessage(err, "placing fog nodes")
	}
	o.observe(metrics.PhasePlacement, start)
	o.metrics.BudgetLeft.Set(float64(budget.Remaining()))

	if err := Apply(g, res); err != nil {
		return nil, err
	}
	for _, p := range res.Placements {
		o.metrics.Placements.WithLabelValues(strconv.Itoa(p.Type.ID)).Inc()
	}
	if !res.Success {
		o.metrics.FailedRuns.Inc()
		o.logger.Warn("Fog placement failed", zap.Error(res.Reason))
	}
	out.Result = res

	return out, nil
}

func (o options) observe(phase string, start time.Time) {
	o.metrics.Duration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// Apply allocates an address for every placement of res and assigns the
// first placement of each node to the node's emulation. Address exhaustion
// fails res and stops; the remaining placements keep a zero address.
func Apply(g *graph.Graph, res *fog.Result) error {
	for i := range res.Placements {
		p := &res.Placements[i]
		addr, err := g.AllocateAddress()
		if err != nil {
			if errors.Is(err, graph.ErrAddressesExhausted) {
				res.Fail(err)
				return nil
			}
			return err
		}
		p.Address = addr

		n, err := g.Node(p.Node)
		if err != nil {
			return err
		}
		if n.Emulation() != nil {
			continue
		}
		if err := g.Assign(p.Node, graph.Emulation{Address: addr, Container: p.Type.Container}); err != nil {
			return err
		}
	}
	return nil
}
