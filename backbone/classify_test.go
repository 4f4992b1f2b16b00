package backbone_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/emufog/emufog-sub000/backbone"
	"github.com/emufog/emufog-sub000/builder"
	"github.com/emufog/emufog-sub000/graph"
)

func build(t *testing.T, cons ...builder.Constructor) *graph.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, cons...)
	require.NoError(t, err)
	return g
}

func classify(t *testing.T, g *graph.Graph) backbone.Report {
	t.Helper()
	rep, err := backbone.Classify(context.Background(), g, backbone.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return rep
}

func backboneIDs(g *graph.Graph, as int) []int {
	var ids []int
	for _, h := range g.System(as).BackboneNodes() {
		ids = append(ids, g.MustNode(h).ID())
	}
	return ids
}

func TestClassify_Line(t *testing.T) {
	g := build(t, builder.Path(0, 0, 10))

	rep := classify(t, g)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, backboneIDs(g, 0))
	for _, id := range []int{0, 9} {
		h, _ := g.Lookup(id)
		assert.True(t, g.MustNode(h).IsEdge(), "node %d", id)
	}
	assert.Equal(t, backbone.Report{HighDegree: 8}, rep)
	assert.Equal(t, 1, backbone.Components(g, 0))
}

func TestClassify_TwoSingleNodeSystems(t *testing.T) {
	g := graph.NewGraph()
	g.System(0)
	g.System(1)
	a, err := g.CreateEdgeNode(1, 0)
	require.NoError(t, err)
	b, err := g.CreateEdgeNode(2, 1)
	require.NoError(t, err)
	_, err = g.CreateEdge(1, a, b, 1, 1)
	require.NoError(t, err)

	rep := classify(t, g)

	st := g.Stats()
	assert.Equal(t, 2, st.BackboneNodes)
	assert.Zero(t, st.EdgeNodes)
	assert.Equal(t, 1, st.Edges)
	assert.Equal(t, 2, rep.CrossSystem)
	assert.Equal(t, 2, rep.Total())
}

func TestClassify_TriangleHasNoBackbone(t *testing.T) {
	g := build(t, builder.Cycle(0, 0, 3))

	rep := classify(t, g)

	assert.Zero(t, g.Stats().BackboneNodes)
	assert.Zero(t, rep.Total())
	assert.Zero(t, backbone.Components(g, 0))
}

func TestClassify_ConnectorBridgesIslands(t *testing.T) {
	// as 0 is a line 0..6 whose ends are cross-linked to as 1 and as 2.
	g := build(t,
		builder.Path(0, 0, 7),
		builder.Path(1, 100, 2),
		builder.Path(2, 200, 2),
		builder.Link(0, 100),
		builder.Link(6, 200),
	)

	rep := classify(t, g)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, backboneIDs(g, 0))
	assert.Equal(t, 4, rep.CrossSystem)
	assert.Equal(t, 5, rep.Connector)
	assert.Equal(t, 1, backbone.Components(g, 0))
}

func TestClassify_DevicesAreNeverPromoted(t *testing.T) {
	sensor := graph.DeviceType{Container: graph.Container{Name: "sensor"}, ScalingFactor: 1}
	g := build(t,
		builder.Path(0, 0, 3),
		builder.Devices(0, 10, 5, sensor),
	)

	classify(t, g)

	h0, _ := g.Lookup(0)
	assert.True(t, g.MustNode(h0).IsBackbone(), "devices count towards degree")
	assert.Equal(t, 5, g.System(0).CountDevice())
	for _, h := range g.System(0).DeviceNodes() {
		assert.True(t, g.MustNode(h).IsDevice())
	}
	assert.Equal(t, 1, backbone.Components(g, 0))
}

func TestClassify_Cancelled(t *testing.T) {
	g := build(t, builder.Path(0, 0, 4), builder.Path(1, 10, 4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backbone.Classify(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

// randomSystems builds systems count systems of size nodes each. Every system
// is a line plus random chords, so it is connected; random inter-system links
// join the systems.
func randomSystems(t *testing.T, seed int64, count, size int) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var cons []builder.Constructor
	for as := 0; as < count; as++ {
		first := as * 1000
		cons = append(cons, builder.Path(as, first, size))
		for k := 0; k < size/2; k++ {
			u, v := first+rng.Intn(size), first+rng.Intn(size)
			if u != v {
				cons = append(cons, builder.Link(u, v))
			}
		}
	}
	for k := 0; k < count; k++ {
		a, b := rng.Intn(count), rng.Intn(count)
		if a != b {
			cons = append(cons, builder.Link(a*1000+rng.Intn(size), b*1000+rng.Intn(size)))
		}
	}
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{builder.WithSeed(seed), builder.WithLatencyFn(builder.UniformWeightFn(0.1, 2))},
		cons...)
	require.NoError(t, err)
	return g
}

func TestClassify_Properties(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := randomSystems(t, seed, 4, 40)
		edgesBefore := g.EdgeCount()

		_, err := backbone.Classify(context.Background(), g, backbone.WithConcurrency(2))
		require.NoError(t, err, "seed %d", seed)

		assert.Equal(t, edgesBefore, g.EdgeCount(), "seed %d: classification never adds edges", seed)
		for _, eh := range g.Edges() {
			cross, err := g.IsCrossSystem(eh)
			require.NoError(t, err)
			if !cross {
				continue
			}
			e := g.MustEdge(eh)
			assert.True(t, g.MustNode(e.From).IsBackbone(), "seed %d: edge %d", seed, e.ID)
			assert.True(t, g.MustNode(e.To).IsBackbone(), "seed %d: edge %d", seed, e.ID)
		}
		for _, s := range g.Systems() {
			if s.CountBackbone() > 0 {
				assert.Equal(t, 1, backbone.Components(g, s.ID()), "seed %d: as %d", seed, s.ID())
			}
		}
	}
}

func TestClassify_Rerun(t *testing.T) {
	g := randomSystems(t, 7, 3, 25)
	classify(t, g)
	before := g.Stats()

	rep := classify(t, g)
	after := g.Stats()

	assert.Equal(t, before.BackboneNodes, after.BackboneNodes-rep.HighDegree-rep.Connector)
	assert.Zero(t, rep.CrossSystem, "cross-system endpoints are already backbone")
	assert.Zero(t, rep.HighDegree, "degrees and the mean are unchanged")
	for _, s := range g.Systems() {
		if s.CountBackbone() > 0 {
			assert.Equal(t, 1, backbone.Components(g, s.ID()))
		}
	}
}

func TestComponents(t *testing.T) {
	g := build(t,
		builder.Path(0, 0, 5),
		builder.Promote(0, 1, 3),
	)
	assert.Equal(t, 2, backbone.Components(g, 0))
	assert.Zero(t, backbone.Components(g, 9))
}
