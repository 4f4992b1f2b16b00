package brite_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emufog/emufog-sub000/graph"
	"github.com/emufog/emufog-sub000/reader/brite"
)

func TestReadFile(t *testing.T) {
	g, err := brite.ReadFile(filepath.Join("testdata", "two_as.brite"))
	require.NoError(t, err)

	assert.Equal(t, graph.Stats{
		Systems:     2,
		EdgeNodes:   7,
		Edges:       7,
		CrossSystem: 1,
	}, g.Stats())
	assert.Equal(t, 4, g.System(0).CountEdge())
	assert.Equal(t, 3, g.System(1).CountEdge())

	eh, ok := g.LookupEdge(6)
	require.True(t, ok)
	e := g.MustEdge(eh)
	assert.Equal(t, 1.4677, e.Latency)
	assert.Equal(t, 1000.0, e.Bandwidth)
	assert.Equal(t, 1, g.MustNode(e.From).ID())
	assert.Equal(t, 4, g.MustNode(e.To).ID())
}

func TestReadErrors(t *testing.T) {
	tests := map[string]struct {
		input string
		want  error
	}{
		"short node line":  {"Nodes: ( 1 )\n0 1 2 3\n", brite.ErrSyntax},
		"bad node id":      {"Nodes: ( 1 )\nx 1 2 3 4 0 RT_NODE\n", brite.ErrSyntax},
		"duplicate node":   {"Nodes: ( 2 )\n0 1 2 3 4 0 RT_NODE\n0 1 2 3 4 0 RT_NODE\n", graph.ErrNodeExists},
		"unknown endpoint": {"Nodes: ( 1 )\n0 1 2 3 4 0 RT_NODE\n\nEdges: ( 1 )\n0 0 9 1 1 1 0 0 E_RT U\n", graph.ErrNodeNotFound},
		"negative delay":   {"Nodes: ( 2 )\n0 1 2 3 4 0 RT_NODE\n1 1 2 3 4 0 RT_NODE\n\nEdges: ( 1 )\n0 0 1 1 -1 1 0 0 E_RT U\n", graph.ErrNegativeLatency},
		"bad bandwidth":    {"Nodes: ( 2 )\n0 1 2 3 4 0 RT_NODE\n1 1 2 3 4 0 RT_NODE\n\nEdges: ( 1 )\n0 0 1 1 1 fast 0 0 E_RT U\n", brite.ErrSyntax},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := brite.Read(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadIgnoresHeader(t *testing.T) {
	g, err := brite.Read(strings.NewReader("Topology: ( 0 Nodes, 0 Edges )\nModel (1 - RTWaxman): 1 2 3\n"))
	require.NoError(t, err)
	assert.Zero(t, g.NodeCount())
}
