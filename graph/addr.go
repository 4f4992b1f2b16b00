// SPDX-License-Identifier: MIT

package graph

import (
	"net/netip"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go4.org/netipx"
)

// DefaultBasePrefix is the prefix synthetic addresses are drawn from when no
// pool is configured.
var DefaultBasePrefix = netip.MustParsePrefix("10.0.0.0/16")

// AddressPool hands out unique addresses from a prefix in increasing order.
// The network address of the prefix is never handed out, and neither is the
// broadcast address of an IPv4 prefix.
type AddressPool struct {
	mu        sync.Mutex
	prefix    netip.Prefix
	next      netip.Addr
	last      netip.Addr
	allocated int
}

// NewAddressPool creates a pool over prefix p. The prefix is masked first, so
// "10.0.3.7/16" seeds from 10.0.0.1.
func NewAddressPool(p netip.Prefix) (*AddressPool, error) {
	if !p.IsValid() {
		return nil, errors.Wrapf(ErrInvalidPrefix, "%v", p)
	}
	p = p.Masked()
	r := netipx.RangeOfPrefix(p)
	last := r.To()
	if p.Addr().Is4() {
		last = last.Prev()
	}
	first := r.From().Next()
	if !first.IsValid() || !last.IsValid() || last.Less(first) {
		return nil, errors.Wrapf(ErrInvalidPrefix, "%v holds no host addresses", p)
	}

	return &AddressPool{prefix: p, next: first, last: last}, nil
}

// MustNewAddressPool is NewAddressPool that panics on error.
func MustNewAddressPool(p netip.Prefix) *AddressPool {
	pool, err := NewAddressPool(p)
	if err != nil {
		panic(err)
	}
	return pool
}

// Next returns the next free address. Once the prefix is used up every call
// returns ErrAddressesExhausted.
func (p *AddressPool) Next() (netip.Addr, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.next.IsValid() || p.last.Less(p.next) {
		return netip.Addr{}, errors.Wrapf(ErrAddressesExhausted, "prefix %v, %d allocated", p.prefix, p.allocated)
	}
	a := p.next
	p.next = a.Next()
	p.allocated++

	return a, nil
}

// Prefix returns the masked prefix of the pool.
func (p *AddressPool) Prefix() netip.Prefix { return p.prefix }

// Allocated returns the number of addresses handed out so far.
func (p *AddressPool) Allocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.allocated
}

// AllocateAddress draws the next address from the graph's pool.
func (g *Graph) AllocateAddress() (netip.Addr, error) {
	a, err := g.pool.Next()
	if err != nil {
		g.logger.Error("Address allocation failed", zap.Error(err))
		return netip.Addr{}, err
	}
	return a, nil
}
