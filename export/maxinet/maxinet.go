// Package maxinet renders a placed topology as a MaxiNet experiment script.
//
// Edge and backbone nodes become Open vSwitch switches, device nodes and fog
// placements become Docker hosts, and every graph edge becomes a link with
// the edge's latency as delay in milliseconds and its bandwidth in Mbit/s.
// A fog host is linked to the switch of its node without delay or bandwidth
// limit.
package maxinet

import (
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/pkg/errors"

	"github.com/emufog/emufog-sub000/fog"
	"github.com/emufog/emufog-sub000/graph"
)

// ErrUnassigned indicates a device or fog host without an address.
var ErrUnassigned = errors.New("maxinet: host has no emulation assignment")

type switchNode struct {
	Name string
	Kind string
}

type dockerHost struct {
	Name        string
	IP          string
	Image       string
	MemoryLimit int64
	CPUShare    string
}

type link struct {
	From, To  string
	Delay     string
	Bandwidth string
}

type script struct {
	Switches []switchNode
	Hosts    []dockerHost
	Links    []link
}

var scriptTemplate = template.Must(template.New("maxinet").Parse(`#!/usr/bin/env python2
# Generated by emufog. Do not edit.

from MaxiNet.Frontend import maxinet
from MaxiNet.Frontend.container import Docker
from mininet.topo import Topo
from mininet.node import OVSSwitch

topo = Topo()

# switches
{{- range .Switches}}
{{.Name}} = topo.addSwitch("{{.Name}}")  # {{.Kind}}
{{- end}}

# docker hosts
{{- range .Hosts}}
{{.Name}} = topo.addHost("{{.Name}}", cls=Docker, ip="{{.IP}}", dimage="{{.Image}}", mem_limit={{.MemoryLimit}}, cpu_shares={{.CPUShare}})
{{- end}}

# links
{{- range .Links}}
topo.addLink({{.From}}, {{.To}}, delay="{{.Delay}}ms"{{if .Bandwidth}}, bw={{.Bandwidth}}{{end}})
{{- end}}

cluster = maxinet.Cluster()
exp = maxinet.Experiment(cluster, topo, switch=OVSSwitch)
exp.setup()
`))

func switchName(n *graph.Node) string { return "s" + strconv.Itoa(n.ID()) }

func deviceName(n *graph.Node) string { return "d" + strconv.Itoa(n.ID()) }

func endpointName(n *graph.Node) string {
	if n.IsDevice() {
		return deviceName(n)
	}
	return switchName(n)
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Export writes the MaxiNet script of g and the placements of res to w.
// Placements need an address, see pipeline.Apply.
func Export(w io.Writer, g *graph.Graph, res *fog.Result) error {
	var s script
	for _, h := range g.Nodes() {
		n := g.MustNode(h)
		if !n.IsDevice() {
			s.Switches = append(s.Switches, switchNode{Name: switchName(n), Kind: n.Kind().String()})
			continue
		}
		em := n.Emulation()
		if em == nil || !em.Address.IsValid() {
			return errors.Wrapf(ErrUnassigned, "device %d", n.ID())
		}
		s.Hosts = append(s.Hosts, docker(deviceName(n), em.Address.String(), em.Container))
	}
	for _, eh := range g.Edges() {
		e := g.MustEdge(eh)
		s.Links = append(s.Links, link{
			From:      endpointName(g.MustNode(e.From)),
			To:        endpointName(g.MustNode(e.To)),
			Delay:     num(e.Latency),
			Bandwidth: num(e.Bandwidth),
		})
	}

	if res != nil {
		perNode := make(map[int]int)
		for _, p := range res.Placements {
			if !p.Address.IsValid() {
				return errors.Wrapf(ErrUnassigned, "fog node %d", p.NodeID)
			}
			perNode[p.NodeID]++
			name := fmt.Sprintf("f%d_%d", p.NodeID, perNode[p.NodeID])
			s.Hosts = append(s.Hosts, docker(name, p.Address.String(), p.Type.Container))
			s.Links = append(s.Links, link{
				From:  "s" + strconv.Itoa(p.NodeID),
				To:    name,
				Delay: "0",
			})
		}
	}

	return errors.Wrap(scriptTemplate.Execute(w, s), "rendering maxinet script")
}

func docker(name, ip string, c graph.Container) dockerHost {
	return dockerHost{
		Name:        name,
		IP:          ip,
		Image:       c.Image(),
		MemoryLimit: c.MemoryLimit,
		CPUShare:    num(c.CPUShare),
	}
}
