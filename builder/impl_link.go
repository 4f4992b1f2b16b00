// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_link.go: constructors that wire or annotate existing nodes.

package builder

import (
	"fmt"

	"github.com/emufog/emufog-sub000/graph"
)

const (
	methodLink    = "Link"
	methodDevices = "Devices"
	methodPromote = "Promote"
)

// Link returns a Constructor that adds an edge between two existing nodes.
// The nodes may belong to different systems.
func Link(u, v int) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		return addEdge(g, cfg, methodLink, u, v)
	}
}

// Devices returns a Constructor that attaches n device nodes of type dt to
// the edge node host. Device ids are first..first+n-1; each attachment adds
// dt.ScalingFactor to the host's device count.
func Devices(host, first, n int, dt graph.DeviceType) Constructor {
	return func(g *graph.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodDevices, n, ErrTooFewVertices)
		}
		hh, ok := g.Lookup(host)
		if !ok {
			return fmt.Errorf("%s: host %d: %w", methodDevices, host, graph.ErrNodeNotFound)
		}
		as := g.MustNode(hh).System()
		for i := 0; i < n; i++ {
			if _, err := g.CreateDeviceNode(first+i, as, dt); err != nil {
				return fmt.Errorf("%s: CreateDeviceNode(%d): %w", methodDevices, first+i, err)
			}
			if err := addEdge(g, cfg, methodDevices, host, first+i); err != nil {
				return err
			}
		}

		return nil
	}
}

// Promote returns a Constructor that converts the listed nodes to backbone
// nodes.
func Promote(ids ...int) Constructor {
	return func(g *graph.Graph, _ builderConfig) error {
		for _, id := range ids {
			h, ok := g.Lookup(id)
			if !ok {
				return fmt.Errorf("%s: node %d: %w", methodPromote, id, graph.ErrNodeNotFound)
			}
			if err := g.ConvertToBackbone(g.MustNode(h).System(), h); err != nil {
				return fmt.Errorf("%s: node %d: %w", methodPromote, id, err)
			}
		}

		return nil
	}
}
