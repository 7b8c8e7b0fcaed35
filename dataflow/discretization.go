// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dataflow

import "math"

// nextPowerOfTwoExponent returns the smallest e such that 2^e >= n, for
// n >= 1.
func nextPowerOfTwoExponent(n float64) uint {
	if n <= 1 {
		return 0
	}
	return uint(math.Ceil(math.Log2(n)))
}

// MaxDiscrete computes the integer discretization bound a solver's
// discrete-time variables must cover (spec §4.4.1): the product of the
// smallest power of two at least as large as paths*jobs*mappables and the
// smallest power of two at least as large as 1/epsilon.
//
// Worked example (spec §8 scenario 5): paths=3, jobs=4, mappables=2,
// epsilon=1e-4 gives ceil(log2(24))=5 -> 32, ceil(log2(1e4))=14 -> 16384,
// max_discrete = 32*16384 = 524288.
func MaxDiscrete(paths, jobs, mappables int, epsilon float64) uint64 {
	if epsilon <= 0 {
		epsilon = 1
	}
	combinatorial := float64(paths) * float64(jobs) * float64(mappables)
	a := uint64(1) << nextPowerOfTwoExponent(combinatorial)
	b := uint64(1) << nextPowerOfTwoExponent(1/epsilon)
	return a * b
}

// MaxAverageTime returns the largest average-case execution time across
// every (process, mappable) instrumentation entry, 0 if there are none.
// Used to size the real-time-to-discrete scale a solver needs.
func (m *Model) MaxAverageTime() float64 {
	if m.Instrumentation == nil || m.Instrumentation.ScaleFactor == 0 {
		return 0
	}
	var max float64
	for _, cycles := range m.Instrumentation.Average {
		t := float64(cycles) / float64(m.Instrumentation.ScaleFactor)
		if t > max {
			max = t
		}
	}
	return max
}

// MemoryScale returns the smallest strictly positive memory quantity, in
// bits, across every (process, mappable) instrumentation entry and every
// buffer's BufferMaxSizeBits*BufferTokenSizeBits product, 0 if the model
// carries no positive memory figure at all. Put/get amounts are not
// considered.
func (m *Model) MemoryScale() uint64 {
	var min uint64
	if m.Instrumentation != nil {
		for _, bits := range m.Instrumentation.MemoryRequirements {
			if bits > 0 && (min == 0 || bits < min) {
				min = bits
			}
		}
	}
	for _, app := range m.Applications {
		for buffer := range app.Buffers {
			size := app.BufferMaxSizeBits[buffer] * app.BufferTokenSizeBits[buffer]
			if size > 0 && (min == 0 || size < min) {
				min = size
			}
		}
	}
	return min
}
