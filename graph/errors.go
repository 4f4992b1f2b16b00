// SPDX-License-Identifier: MIT

package graph

import "github.com/pkg/errors"

// Sentinel errors for graph operations. Callers branch with errors.Is; the
// graph attaches node and edge ids as context when it returns them.
var (
	// ErrSystemNotFound indicates a node was created for an unregistered system.
	ErrSystemNotFound = errors.New("graph: autonomous system not found")

	// ErrNodeExists indicates a node id collision.
	ErrNodeExists = errors.New("graph: node id already in use")

	// ErrNodeNotFound indicates an unknown node handle or id.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrEdgeExists indicates an edge id collision.
	ErrEdgeExists = errors.New("graph: edge id already in use")

	// ErrEdgeNotFound indicates an unknown edge handle.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrNegativeLatency indicates an edge latency below zero.
	ErrNegativeLatency = errors.New("graph: negative latency")

	// ErrNegativeBandwidth indicates an edge bandwidth below zero.
	ErrNegativeBandwidth = errors.New("graph: negative bandwidth")

	// ErrLoopNotAllowed indicates an edge whose endpoints are the same node.
	ErrLoopNotAllowed = errors.New("graph: self-loop not allowed")

	// ErrWrongSystem indicates a conversion for a node the named system does not own.
	ErrWrongSystem = errors.New("graph: node not owned by system")

	// ErrBadDeviceType indicates a device type with a scaling factor below one.
	ErrBadDeviceType = errors.New("graph: invalid device type")

	// ErrAddressesExhausted indicates the address pool has no addresses left.
	ErrAddressesExhausted = errors.New("graph: address space exhausted")

	// ErrInvalidPrefix indicates an address pool prefix that cannot seed allocation.
	ErrInvalidPrefix = errors.New("graph: invalid base prefix")
)
