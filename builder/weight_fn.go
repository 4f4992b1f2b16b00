// Edge-latency distributions for graph constructors.

package builder

import (
	"fmt"
	"math/rand"
)

// DefaultEdgeLatency is the latency of each edge when no custom WeightFn is
// provided.
const DefaultEdgeLatency float64 = 1

// WeightFn produces an edge latency given an optional *rand.Rand source. It
// must be deterministic for a given RNG seed.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultEdgeLatency.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultEdgeLatency
}

// ConstantWeightFn returns a WeightFn that always yields value. Panics if
// value < 0.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %g", value))
	}
	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformWeightFn returns a WeightFn sampling uniformly in [min, max). Panics
// if min < 0 or max < min. With a nil rng and min < max it yields
// DefaultEdgeLatency.
func UniformWeightFn(min, max float64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if max == min {
			return min
		}
		if rng == nil {
			return DefaultEdgeLatency
		}
		return min + rng.Float64()*(max-min)
	}
}

// SequenceWeightFn returns a WeightFn that yields values in order and then
// repeats the last one. Useful for fixtures that need specific latencies per
// edge in constructor order. Panics on empty or negative input.
func SequenceWeightFn(values ...float64) WeightFn {
	if len(values) == 0 {
		panic("SequenceWeightFn: no values")
	}
	for _, v := range values {
		if v < 0 {
			panic(fmt.Sprintf("SequenceWeightFn: value must be ≥ 0, got %g", v))
		}
	}
	i := 0
	return func(_ *rand.Rand) float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}
