// Package brite reads topologies in the BRITE output format.
//
// A BRITE file holds a "Nodes:" section with one router per line
//
//	id x y indegree outdegree as type
//
// and an "Edges:" section with one link per line
//
//	id from to length delay bandwidth as_from as_to type [direction]
//
// Every router becomes an edge node of its autonomous system; every link
// becomes an edge with the delay as latency. Other sections are ignored.
package brite

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/emufog/emufog-sub000/graph"
)

// ErrSyntax indicates a malformed line.
var ErrSyntax = errors.New("brite: syntax error")

const (
	nodeFields = 7
	edgeFields = 9
)

type section int

const (
	sectionNone section = iota
	sectionNodes
	sectionEdges
)

// ReadFile reads the BRITE file at path into a new graph created with opts.
func ReadFile(path string, opts ...graph.GraphOption) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	g, err := Read(f, opts...)
	if err != nil {
		return nil, errors.WithMessagef(err, "file %q", path)
	}
	return g, nil
}

// Read parses a BRITE topology from r into a new graph created with opts.
// Nodes must precede the edges that reference them.
func Read(r io.Reader, opts ...graph.GraphOption) (*graph.Graph, error) {
	g := graph.NewGraph(opts...)
	sc := bufio.NewScanner(r)
	cur := sectionNone

	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			cur = sectionNone
			continue
		case strings.HasPrefix(text, "Nodes:"):
			cur = sectionNodes
			continue
		case strings.HasPrefix(text, "Edges:"):
			cur = sectionEdges
			continue
		}

		var err error
		switch cur {
		case sectionNodes:
			err = readNode(g, strings.Fields(text))
		case sectionEdges:
			err = readEdge(g, strings.Fields(text))
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return g, nil
}

func readNode(g *graph.Graph, f []string) error {
	if len(f) < nodeFields {
		return errors.Wrapf(ErrSyntax, "node line has %d fields, want %d", len(f), nodeFields)
	}
	id, err := atoi(f[0], "node id")
	if err != nil {
		return err
	}
	as, err := atoi(f[5], "as id")
	if err != nil {
		return err
	}
	g.System(as)
	_, err = g.CreateEdgeNode(id, as)
	return err
}

func readEdge(g *graph.Graph, f []string) error {
	if len(f) < edgeFields {
		return errors.Wrapf(ErrSyntax, "edge line has %d fields, want %d", len(f), edgeFields)
	}
	id, err := atoi(f[0], "edge id")
	if err != nil {
		return err
	}
	from, err := endpoint(g, f[1])
	if err != nil {
		return err
	}
	to, err := endpoint(g, f[2])
	if err != nil {
		return err
	}
	delay, err := atof(f[4], "delay")
	if err != nil {
		return err
	}
	bw, err := atof(f[5], "bandwidth")
	if err != nil {
		return err
	}
	_, err = g.CreateEdge(id, from, to, delay, bw)
	return err
}

func endpoint(g *graph.Graph, s string) (graph.Handle, error) {
	id, err := atoi(s, "endpoint")
	if err != nil {
		return graph.NoHandle, err
	}
	h, ok := g.Lookup(id)
	if !ok {
		return graph.NoHandle, errors.Wrapf(graph.ErrNodeNotFound, "endpoint %d", id)
	}
	return h, nil
}

func atoi(s, what string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "%s %q", what, s)
	}
	return v, nil
}

func atof(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrSyntax, "%s %q", what, s)
	}
	return v, nil
}
