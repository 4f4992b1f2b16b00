// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node variants, handles, container descriptors and the Graph type.
// Policy:
//   - Handles are stable for the lifetime of a Graph; slots are never freed.
//   - Variant payload lives in the slot and is replaced on conversion.

package graph

import (
	"fmt"
	"net/netip"
	"sync"

	"go.uber.org/zap"
)

// Kind is the variant of a node.
type Kind uint8

const (
	// EdgeNode marks a node that may have devices attached.
	EdgeNode Kind = iota
	// BackboneNode marks a node promoted to the network backbone.
	BackboneNode
	// DeviceNode marks a leaf end-user device.
	DeviceNode
)

func (k Kind) String() string {
	switch k {
	case EdgeNode:
		return "edge"
	case BackboneNode:
		return "backbone"
	case DeviceNode:
		return "device"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Handle is the stable arena index of a node. The zero value is a valid
// handle; use NoHandle for "absent".
type Handle int

// NoHandle marks the absence of a node.
const NoHandle Handle = -1

// EdgeHandle is the stable arena index of an edge.
type EdgeHandle int

// Container describes a container image and its resource limits.
type Container struct {
	// Name is the image name, e.g. "ubuntu".
	Name string
	// Tag is the image tag, e.g. "latest".
	Tag string
	// MemoryLimit is the memory limit in bytes.
	MemoryLimit int64
	// CPUShare is the relative CPU share of the container.
	CPUShare float64
}

// Image returns "name:tag".
func (c Container) Image() string {
	if c.Tag == "" {
		return c.Name
	}
	return c.Name + ":" + c.Tag
}

// DeviceType is the template of an edge device.
type DeviceType struct {
	Container
	// ScalingFactor is the number of end users one device of this type
	// represents. It is added to the host's device count.
	ScalingFactor int
	// AverageDeviceCount is the average number of devices of this type per
	// edge node.
	AverageDeviceCount float64
}

// FogType is the template of a fog node container.
type FogType struct {
	Container
	// ID identifies the type in configuration and results.
	ID int
	// MaxClients is the number of devices one container can serve.
	MaxClients int
	// Costs is the deployment cost of one container.
	Costs float64
}

// Emulation is the emulation assignment of a node: the address it is
// reachable at and the container it runs.
type Emulation struct {
	Address   netip.Addr
	Container Container
}

// Node is one arena slot. The pointer is stable; Kind and the
// variant-specific payload change on conversion.
type Node struct {
	handle Handle
	id     int
	system int
	kind   Kind
	edges  []EdgeHandle

	emulation *Emulation

	// EdgeNode payload.
	deviceCount int
	// DeviceNode payload.
	device *DeviceType
}

// Handle returns the stable arena handle of n.
func (n *Node) Handle() Handle { return n.handle }

// ID returns the topology id of n.
func (n *Node) ID() int { return n.id }

// System returns the id of the owning autonomous system.
func (n *Node) System() int { return n.system }

// Kind returns the current variant.
func (n *Node) Kind() Kind { return n.kind }

// IsEdge reports whether n is currently an EdgeNode.
func (n *Node) IsEdge() bool { return n.kind == EdgeNode }

// IsBackbone reports whether n is currently a BackboneNode.
func (n *Node) IsBackbone() bool { return n.kind == BackboneNode }

// IsDevice reports whether n is currently a DeviceNode.
func (n *Node) IsDevice() bool { return n.kind == DeviceNode }

// Edges returns the incident edges in insertion order. The slice is owned by
// the graph and must not be modified.
func (n *Node) Edges() []EdgeHandle { return n.edges }

// Degree returns the number of incident edges.
func (n *Node) Degree() int { return len(n.edges) }

// DeviceCount returns the accumulated device weight of an EdgeNode; zero for
// the other variants.
func (n *Node) DeviceCount() int { return n.deviceCount }

// HasDevices reports whether an EdgeNode has devices attached.
func (n *Node) HasDevices() bool { return n.kind == EdgeNode && n.deviceCount > 0 }

// DeviceType returns the device template of a DeviceNode.
func (n *Node) DeviceType() (DeviceType, bool) {
	if n.kind != DeviceNode || n.device == nil {
		return DeviceType{}, false
	}
	return *n.device, true
}

// Emulation returns the emulation assignment, or nil if none was made.
func (n *Node) Emulation() *Emulation { return n.emulation }

func (n *Node) String() string {
	return fmt.Sprintf("%s(%d@as%d)", n.kind, n.id, n.system)
}

// Edge is an undirected link between two nodes. Endpoints are stored as
// handles so they survive variant conversion.
type Edge struct {
	Handle    EdgeHandle
	ID        int
	From      Handle
	To        Handle
	Latency   float64
	Bandwidth float64
}

// Other returns the endpoint of e opposite to h, or NoHandle if h is not an
// endpoint.
func (e *Edge) Other(h Handle) Handle {
	switch h {
	case e.From:
		return e.To
	case e.To:
		return e.From
	default:
		return NoHandle
	}
}

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithLogger sets the logger used for conversion and allocation events.
func WithLogger(l *zap.Logger) GraphOption {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithAddressPool sets the pool synthetic addresses are drawn from.
func WithAddressPool(p *AddressPool) GraphOption {
	return func(g *Graph) {
		if p != nil {
			g.pool = p
		}
	}
}

// Graph is the topology arena.
//
// mu guards the arena shape (slot and edge slices, id indexes, system
// registry). Conversions hold mu in shared mode and only touch the converted
// slot and its system; see the package documentation.
type Graph struct {
	mu sync.RWMutex

	nodes []*Node
	edges []*Edge

	nodeIndex map[int]Handle
	edgeIndex map[int]EdgeHandle
	systems   map[int]*System

	maxNodeID int
	maxEdgeID int

	pool   *AddressPool
	logger *zap.Logger
}

// NewGraph creates an empty Graph. Without WithAddressPool the graph
// allocates addresses from DefaultBasePrefix.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodeIndex: make(map[int]Handle),
		edgeIndex: make(map[int]EdgeHandle),
		systems:   make(map[int]*System),
		maxNodeID: -1,
		maxEdgeID: -1,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.pool == nil {
		g.pool = MustNewAddressPool(DefaultBasePrefix)
	}

	return g
}

// Stats is a snapshot of catalog sizes.
type Stats struct {
	Systems        int
	EdgeNodes      int
	BackboneNodes  int
	DeviceNodes    int
	Edges          int
	CrossSystem    int
	AllocatedAddrs int
}
