// Package devices attaches end-user devices to the edge nodes of a
// classified topology.
//
// Every device becomes a DeviceNode in the system of its host, linked to the
// host by one edge and assigned a fresh address and the container of its
// device type. The host's device count grows by the type's scaling factor
// with every attached device.
package devices

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/emufog/emufog-sub000/graph"
)

// ErrBadLink indicates a negative host-device latency or bandwidth.
var ErrBadLink = errors.New("devices: invalid host-device link")

// MaxAverageDeviceCount bounds the average device count of a type. Sampled
// counts never exceed twice this value per host.
const MaxAverageDeviceCount = 1 << 12

// Option customizes Assign.
type Option func(*options)

type options struct {
	latency   float64
	bandwidth float64
	rng       *rand.Rand
	logger    *zap.Logger
}

// WithLink sets the latency and bandwidth of host-device edges.
func WithLink(latency, bandwidth float64) Option {
	return func(o *options) {
		o.latency, o.bandwidth = latency, bandwidth
	}
}

// WithSeed samples the device count of every host and type uniformly from
// [0, 2·average] using a PCG source seeded with seed. Without it every host
// receives the rounded average.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Report summarizes an Assign run.
type Report struct {
	Hosts   int
	Devices int
	// ByType counts devices per image, e.g. "sensor:latest".
	ByType map[string]int
}

// Assign attaches devices of every type to every edge node of g, hosts in
// ascending node id and types in the given order. Address exhaustion is
// returned as an error wrapping graph.ErrAddressesExhausted; devices created
// before it stay in the graph.
func Assign(g *graph.Graph, types []graph.DeviceType, opts ...Option) (Report, error) {
	o := options{bandwidth: 1000, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	rep := Report{ByType: make(map[string]int)}
	if o.latency < 0 || o.bandwidth < 0 || math.IsNaN(o.latency) || math.IsNaN(o.bandwidth) {
		return rep, errors.Wrapf(ErrBadLink, "latency %g, bandwidth %g", o.latency, o.bandwidth)
	}
	for _, dt := range types {
		if dt.ScalingFactor < 1 || !(dt.AverageDeviceCount >= 0 && dt.AverageDeviceCount <= MaxAverageDeviceCount) {
			return rep, errors.Wrapf(graph.ErrBadDeviceType, "%s: scaling factor %d, average %g",
				dt.Image(), dt.ScalingFactor, dt.AverageDeviceCount)
		}
	}

	var hosts []*graph.Node
	for _, h := range g.Nodes() {
		if n := g.MustNode(h); n.IsEdge() {
			hosts = append(hosts, n)
		}
	}

	for _, host := range hosts {
		attached := 0
		for _, dt := range types {
			for i, n := 0, o.count(dt); i < n; i++ {
				if err := attach(g, host, dt, o); err != nil {
					return rep, errors.WithMessagef(err, "host %d", host.ID())
				}
				attached++
				rep.ByType[dt.Image()]++
			}
		}
		if attached > 0 {
			rep.Hosts++
			rep.Devices += attached
		}
	}
	o.logger.Info("Assigned devices", zap.Int("hosts", rep.Hosts), zap.Int("devices", rep.Devices))

	return rep, nil
}

func (o options) count(dt graph.DeviceType) int {
	if o.rng == nil {
		return int(math.Round(dt.AverageDeviceCount))
	}
	return int(math.Round(o.rng.Float64() * 2 * dt.AverageDeviceCount))
}

func attach(g *graph.Graph, host *graph.Node, dt graph.DeviceType, o options) error {
	addr, err := g.AllocateAddress()
	if err != nil {
		return err
	}
	id := g.NextNodeID()
	h, err := g.CreateDeviceNode(id, host.System(), dt)
	if err != nil {
		return err
	}
	if _, err := g.CreateEdge(g.NextEdgeID(), host.Handle(), h, o.latency, o.bandwidth); err != nil {
		return err
	}
	return g.Assign(h, graph.Emulation{Address: addr, Container: dt.Container})
}
