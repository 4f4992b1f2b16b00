// Package graph provides the mutable topology model used by emufog: autonomous
// systems, nodes in one of three variants and the edges between them.
//
// The model is an arena. Every node lives in a slot addressed by a stable
// Handle; edges store handles rather than node pointers. Converting a node
// from one variant to another (Edge → Backbone, for example) replaces the
// slot payload in place, so every edge and every caller holding the Handle
// observes the new variant immediately.
//
// Variants:
//
//	EdgeNode     – may have devices attached; tracks a device count that
//	               drives coverage demand during fog placement.
//	BackboneNode – cannot have devices; may still host a fog node.
//	DeviceNode   – a leaf consumer carrying a DeviceType (container template
//	               and scaling factor).
//
// Core methods:
//
//	// Systems
//	System(id int) *System              // get-or-create, O(1)
//	HasSystem(id int) bool              // O(1)
//	Systems() []*System                 // sorted by id
//
//	// Node lifecycle
//	CreateEdgeNode(id, as int) (Handle, error)
//	CreateBackboneNode(id, as int) (Handle, error)
//	CreateDeviceNode(id, as int, dt DeviceType) (Handle, error)
//	ConvertToBackbone(as int, h Handle) error
//	ConvertToEdge(as int, h Handle) error
//	ConvertToDevice(as int, h Handle, dt DeviceType) error
//
//	// Edge lifecycle
//	CreateEdge(id int, from, to Handle, latency, bandwidth float64) (EdgeHandle, error)
//
//	// Addresses
//	AllocateAddress() (netip.Addr, error)
//	Assign(h Handle, e Emulation) error
//
// Concurrency:
//
//	Structural mutations (node and edge creation, address allocation) are
//	serialized by the Graph. Conversions take only the shared lock: they
//	mutate the converted slot and the owning system's collections, so
//	conversions of nodes in distinct systems may run concurrently. Callers
//	must not convert two nodes of the same system from different goroutines.
//
// Errors:
//
//	ErrSystemNotFound     – node creation references an unregistered system.
//	ErrNodeExists         – node id already used.
//	ErrNodeNotFound       – handle or id unknown.
//	ErrEdgeExists         – edge id already used.
//	ErrNegativeLatency    – edge latency < 0.
//	ErrNegativeBandwidth  – edge bandwidth < 0.
//	ErrLoopNotAllowed     – edge from a node to itself.
//	ErrWrongSystem        – conversion names a system that does not own the node.
//	ErrBadDeviceType      – device scaling factor < 1.
//	ErrAddressesExhausted – address pool used up.
package graph
