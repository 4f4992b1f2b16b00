package devices_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog-sub000/builder"
	"github.com/emufog/emufog-sub000/devices"
	"github.com/emufog/emufog-sub000/graph"
)

var (
	camera = graph.DeviceType{
		Container:          graph.Container{Name: "camera", Tag: "latest", MemoryLimit: 64 << 20, CPUShare: 0.5},
		ScalingFactor:      2,
		AverageDeviceCount: 1,
	}
	phone = graph.DeviceType{
		Container:          graph.Container{Name: "phone", Tag: "2"},
		ScalingFactor:      1,
		AverageDeviceCount: 2.4,
	}
)

func TestAssign_Average(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(0, 0, 4), builder.Promote(1, 2))
	require.NoError(t, err)

	rep, err := devices.Assign(g, []graph.DeviceType{camera, phone}, devices.WithLink(0.5, 100))
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Hosts, "backbone nodes get no devices")
	assert.Equal(t, 6, rep.Devices)
	assert.Equal(t, map[string]int{"camera:latest": 2, "phone:2": 4}, rep.ByType)

	for _, id := range []int{0, 3} {
		h, _ := g.Lookup(id)
		assert.Equal(t, 2*1+1*2, g.MustNode(h).DeviceCount(), "host %d", id)
	}

	// Devices get ids after the largest router id, host 0 first.
	h, ok := g.Lookup(4)
	require.True(t, ok)
	dev := g.MustNode(h)
	require.True(t, dev.IsDevice())
	dt, _ := dev.DeviceType()
	assert.Equal(t, "camera", dt.Name)
	require.NotNil(t, dev.Emulation())
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), dev.Emulation().Address)

	e := g.MustEdge(dev.Edges()[0])
	assert.Equal(t, 0.5, e.Latency)
	assert.Equal(t, 100.0, e.Bandwidth)
}

func TestAssign_SeededIsDeterministic(t *testing.T) {
	run := func() []int {
		g, err := builder.BuildGraph(nil, nil, builder.Star(0, 0, 20))
		require.NoError(t, err)
		_, err = devices.Assign(g, []graph.DeviceType{phone}, devices.WithSeed(99))
		require.NoError(t, err)
		var counts []int
		for _, h := range g.System(0).EdgeNodes() {
			counts = append(counts, g.MustNode(h).DeviceCount())
		}
		return counts
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
	for _, c := range a {
		assert.LessOrEqual(t, c, 5, "at most round(2·2.4) devices")
	}
}

func TestAssign_Errors(t *testing.T) {
	pool, err := graph.NewAddressPool(netip.MustParsePrefix("10.0.0.0/30"))
	require.NoError(t, err)
	g, err := builder.BuildGraph([]graph.GraphOption{graph.WithAddressPool(pool)}, nil, builder.Path(0, 0, 2))
	require.NoError(t, err)

	_, err = devices.Assign(g, []graph.DeviceType{phone})
	assert.ErrorIs(t, err, graph.ErrAddressesExhausted)

	_, err = devices.Assign(g, []graph.DeviceType{{ScalingFactor: 0}})
	assert.ErrorIs(t, err, graph.ErrBadDeviceType)

	huge := phone
	huge.AverageDeviceCount = devices.MaxAverageDeviceCount + 1
	rep, err := devices.Assign(g, []graph.DeviceType{huge})
	assert.ErrorIs(t, err, graph.ErrBadDeviceType)
	assert.Zero(t, rep.Devices, "rejected before any device is attached")

	_, err = devices.Assign(g, nil, devices.WithLink(-1, 1))
	assert.ErrorIs(t, err, devices.ErrBadLink)
}
