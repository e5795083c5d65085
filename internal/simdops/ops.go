// Package simdops provides the SIMD operations used by the raster filters
// and displacement fields. All samples are float64.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops provides SIMD-accelerated float64 operations.
// Function pointers keep call sites independent of the kernel set.
type Ops struct {
	// ConvolveValid computes valid correlation of signal with kernel:
	//   dst[i] = Σ signal[i+k] * kernel[k]
	// Symmetric kernels (Gaussian, box) make this a convolution.
	ConvolveValid func(dst, signal, kernel []float64)

	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var ops64 = Ops{
	ConvolveValid: f64.ConvolveValid,
	Interleave2:   f64.Interleave2,
	Sum:           f64.Sum,
	Scale:         f64.Scale,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}
