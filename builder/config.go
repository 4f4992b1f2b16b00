// SPDX-License-Identifier: MIT
// Package: builder
//
// config.go: internal configuration, deterministic defaults and options.
//
// Deterministic defaults:
//   • rng       = nil                      (pure unless seeded)
//   • latencyFn = DefaultWeightFn          (1.0 per edge)
//   • bandwidth = DefaultBandwidth

package builder

import "math/rand"

// DefaultBandwidth is the bandwidth of every generated edge unless
// WithBandwidth overrides it.
const DefaultBandwidth = 1000.0

// builderConfig aggregates all knobs used by constructors. It is passed by
// value to constructors.
type builderConfig struct {
	rng       *rand.Rand
	latencyFn WeightFn
	bandwidth float64
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		latencyFn: DefaultWeightFn,
		bandwidth: DefaultBandwidth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// BuilderOption customizes a builderConfig before construction begins.
// Option constructors panic on meaningless input; constructors themselves
// never panic.
type BuilderOption func(*builderConfig)

// WithSeed attaches a deterministic RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand attaches an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithLatencyFn overrides the per-edge latency generator. Panics on nil.
func WithLatencyFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithLatencyFn(nil)")
	}
	return func(c *builderConfig) {
		c.latencyFn = fn
	}
}

// WithBandwidth sets the bandwidth of generated edges. Panics if bw < 0.
func WithBandwidth(bw float64) BuilderOption {
	if bw < 0 {
		panic("builder: WithBandwidth(bw<0)")
	}
	return func(c *builderConfig) {
		c.bandwidth = bw
	}
}
