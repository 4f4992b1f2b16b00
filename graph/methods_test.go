// SPDX-License-Identifier: MIT
// Package graph_test verifies graph.Graph method-level contracts.

package graph_test

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog-sub000/graph"
)

var sensor = graph.DeviceType{
	Container:          graph.Container{Name: "sensor", Tag: "latest", MemoryLimit: 1 << 20, CPUShare: 0.1},
	ScalingFactor:      3,
	AverageDeviceCount: 2,
}

func newTwoSystemGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.NewGraph()
	g.System(0)
	g.System(1)
	return g
}

func TestGraph_CreateNode(t *testing.T) {
	g := newTwoSystemGraph(t)

	h, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	n := g.MustNode(h)
	assert.Equal(t, 1, n.ID())
	assert.Equal(t, 0, n.System())
	assert.Equal(t, graph.EdgeNode, n.Kind())

	_, err = g.CreateBackboneNode(1, 1)
	assert.ErrorIs(t, err, graph.ErrNodeExists, "ids are unique across systems and variants")

	_, err = g.CreateEdgeNode(2, 7)
	assert.ErrorIs(t, err, graph.ErrSystemNotFound)
	assert.False(t, g.HasSystem(7))

	_, err = g.CreateDeviceNode(3, 0, graph.DeviceType{ScalingFactor: 0})
	assert.ErrorIs(t, err, graph.ErrBadDeviceType)

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 2, g.NextNodeID())
}

func TestGraph_CreateEdgeValidation(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	b, err := g.CreateEdgeNode(2, 0)
	require.NoError(t, err)

	tests := map[string]struct {
		id        int
		from, to  graph.Handle
		latency   float64
		bandwidth float64
		want      error
	}{
		"negative latency":   {id: 1, from: a, to: b, latency: -1, bandwidth: 1, want: graph.ErrNegativeLatency},
		"negative bandwidth": {id: 1, from: a, to: b, latency: 1, bandwidth: -1, want: graph.ErrNegativeBandwidth},
		"loop":               {id: 1, from: a, to: a, latency: 1, bandwidth: 1, want: graph.ErrLoopNotAllowed},
		"unknown endpoint":   {id: 1, from: a, to: graph.Handle(42), latency: 1, bandwidth: 1, want: graph.ErrNodeNotFound},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := g.CreateEdge(tc.id, tc.from, tc.to, tc.latency, tc.bandwidth)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Zero(t, g.EdgeCount())

	_, err = g.CreateEdge(1, a, b, 0, 0)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, b, a, 1, 1)
	assert.ErrorIs(t, err, graph.ErrEdgeExists)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 2, g.NextEdgeID())
}

func TestGraph_DeviceCountSideEffect(t *testing.T) {
	g := newTwoSystemGraph(t)
	host, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	bb, err := g.CreateBackboneNode(2, 0)
	require.NoError(t, err)
	d1, err := g.CreateDeviceNode(10, 0, sensor)
	require.NoError(t, err)
	d2, err := g.CreateDeviceNode(11, 0, sensor)
	require.NoError(t, err)

	_, err = g.CreateEdge(1, host, d1, 1, 1)
	require.NoError(t, err)
	_, err = g.CreateEdge(2, d2, host, 1, 1)
	require.NoError(t, err)
	_, err = g.CreateEdge(3, bb, d2, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 6, g.MustNode(host).DeviceCount())
	assert.True(t, g.MustNode(host).HasDevices())
	assert.Zero(t, g.MustNode(bb).DeviceCount(), "backbone nodes never accumulate devices")

	dt, ok := g.MustNode(d1).DeviceType()
	require.True(t, ok)
	assert.Equal(t, "sensor:latest", dt.Image())
}

func TestGraph_ConversionKeepsIdentity(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateEdgeNode(7, 0)
	require.NoError(t, err)
	b, err := g.CreateEdgeNode(8, 0)
	require.NoError(t, err)
	eh, err := g.CreateEdge(1, a, b, 2.5, 100)
	require.NoError(t, err)

	before := g.MustNode(a)
	require.NoError(t, g.ConvertToBackbone(0, a))

	after := g.MustNode(a)
	assert.Same(t, before, after, "slot pointer is stable")
	assert.Equal(t, graph.BackboneNode, before.Kind(), "old references observe the new variant")
	assert.Equal(t, 7, after.ID())
	assert.Equal(t, []graph.EdgeHandle{eh}, after.Edges())

	nb, err := g.Neighbor(eh, b)
	require.NoError(t, err)
	assert.True(t, nb.IsBackbone(), "edge resolves to the converted node")

	s := g.System(0)
	assert.Equal(t, []graph.Handle{a}, s.BackboneNodes())
	assert.Equal(t, []graph.Handle{b}, s.EdgeNodes())
}

func TestGraph_ConversionRoundTripKeepsDevices(t *testing.T) {
	g := newTwoSystemGraph(t)
	host, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	dev, err := g.CreateDeviceNode(2, 0, sensor)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, host, dev, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 3, g.MustNode(host).DeviceCount())

	require.NoError(t, g.ConvertToBackbone(0, host))
	assert.Zero(t, g.MustNode(host).DeviceCount())
	assert.False(t, g.MustNode(host).HasDevices())

	require.NoError(t, g.ConvertToEdge(0, host))
	n := g.MustNode(host)
	assert.Equal(t, 1, n.Degree())
	assert.Equal(t, 3, n.DeviceCount(), "count is derived from the attached devices")
	assert.True(t, n.HasDevices())

	// Devices appearing or disappearing update their hosts.
	require.NoError(t, g.ConvertToEdge(0, dev))
	assert.Zero(t, g.MustNode(host).DeviceCount())
	require.NoError(t, g.ConvertToDevice(0, dev, sensor))
	assert.Equal(t, 3, g.MustNode(host).DeviceCount())
}

func TestGraph_ConversionIdempotent(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateBackboneNode(1, 1)
	require.NoError(t, err)
	b, err := g.CreateEdgeNode(2, 1)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, a, b, 1, 1)
	require.NoError(t, err)

	require.NoError(t, g.ConvertToBackbone(1, a))
	n := g.MustNode(a)
	assert.Equal(t, 1, n.ID())
	assert.Equal(t, 1, n.System())
	assert.Len(t, n.Edges(), 1)
	assert.Equal(t, 1, g.System(1).CountBackbone())
}

func TestGraph_ConversionWrongSystem(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)

	err = g.ConvertToBackbone(1, a)
	require.ErrorIs(t, err, graph.ErrWrongSystem)
	assert.True(t, g.MustNode(a).IsEdge())

	err = g.ConvertToBackbone(0, graph.Handle(99))
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}

func TestGraph_ConvertToDeviceAndBack(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)

	require.NoError(t, g.ConvertToDevice(0, a, sensor))
	assert.True(t, g.MustNode(a).IsDevice())
	assert.Equal(t, 1, g.System(0).CountDevice())

	require.NoError(t, g.ConvertToEdge(0, a))
	_, ok := g.MustNode(a).DeviceType()
	assert.False(t, ok)
	assert.Equal(t, 1, g.System(0).CountEdge())
	assert.Zero(t, g.System(0).CountDevice())
}

func TestGraph_CrossSystemAndStats(t *testing.T) {
	g := newTwoSystemGraph(t)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	b, err := g.CreateEdgeNode(2, 1)
	require.NoError(t, err)
	c, err := g.CreateBackboneNode(3, 1)
	require.NoError(t, err)
	cross, err := g.CreateEdge(5, a, b, 1, 1)
	require.NoError(t, err)
	local, err := g.CreateEdge(4, b, c, 1, 1)
	require.NoError(t, err)

	ok, err := g.IsCrossSystem(cross)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = g.IsCrossSystem(local)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []graph.EdgeHandle{local, cross}, g.Edges(), "sorted by edge id")
	assert.Equal(t, graph.Stats{
		Systems:       2,
		EdgeNodes:     2,
		BackboneNodes: 1,
		Edges:         2,
		CrossSystem:   1,
	}, g.Stats())

	ids := make([]int, 0, 2)
	for _, s := range g.Systems() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []int{0, 1}, ids)
	assert.Equal(t, []graph.Handle{b, c}, g.System(1).RouterNodes())
}

func TestGraph_AssignAndAllocate(t *testing.T) {
	pool, err := graph.NewAddressPool(netip.MustParsePrefix("192.168.1.0/30"))
	require.NoError(t, err)
	g := graph.NewGraph(graph.WithAddressPool(pool))
	g.System(0)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)

	addr, err := g.AllocateAddress()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", addr.String())
	require.NoError(t, g.Assign(a, graph.Emulation{Address: addr, Container: sensor.Container}))
	assert.Equal(t, addr, g.MustNode(a).Emulation().Address)

	addr, err = g.AllocateAddress()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.2", addr.String())

	_, err = g.AllocateAddress()
	assert.True(t, errors.Is(err, graph.ErrAddressesExhausted))
	assert.Equal(t, 2, g.Stats().AllocatedAddrs)
}
