// Package filter provides the raster filters the inbetweening stages are
// built from: Gaussian smoothing, bilinear resizing, Canny edge detection,
// morphological dilation and the Euclidean distance transform.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/simdops"
)

// GaussianKernel generates a normalized 1-D Gaussian kernel.
//
// Parameters:
//
//	size:  Number of taps (must be odd and positive)
//	sigma: Standard deviation in pixels. When sigma <= 0 it is derived from
//	       the size, and sizes up to 7 use fixed binomial tables.
//
// Returns:
//
//	Kernel coefficients normalized so that sum = 1.0
//
// The kernel is symmetric: k[i] = k[size-1-i]
func GaussianKernel(size int, sigma float64) ([]float64, error) {
	if size < 1 || size%halfDivisor == 0 {
		return nil, fmt.Errorf("gaussian kernel size must be odd and positive, got %d", size)
	}

	if sigma <= 0 {
		if fixed, ok := fixedGaussianKernels[size]; ok && size <= maxFixedKernelSize {
			return append([]float64(nil), fixed...), nil
		}
		sigma = (float64(size-1)/halfDivisor-1)*autoSigmaScale + autoSigmaOffset
	}

	kernel := make([]float64, size)
	center := float64(size-1) / halfDivisor
	scale := -0.5 / (sigma * sigma)

	for i := range size {
		x := float64(i) - center
		kernel[i] = math.Exp(scale * x * x)
	}

	// Uses SIMD-accelerated sum and scale operations
	ops := simdops.Float64Ops()
	ops.Scale(kernel, kernel, 1/ops.Sum(kernel))

	return kernel, nil
}

// KernelSizeForSigma returns the kernel size used when only sigma is given.
func KernelSizeForSigma(sigma float64) int {
	return mathutil.RoundHalfEven(sigma*sigmaRadiusFactor*halfDivisor+1) | 1
}

// GaussianBlur smooths a plane with a separable Gaussian. A size of zero
// derives the size from sigma. Borders are reflected without repeating the
// edge sample.
func GaussianBlur(src *raster.Plane, size int, sigma float64) (*raster.Plane, error) {
	if size <= 0 {
		size = KernelSizeForSigma(sigma)
	}
	kernel, err := GaussianKernel(size, sigma)
	if err != nil {
		return nil, err
	}
	return SeparableFilter(src, kernel, kernel), nil
}

// SeparableFilter correlates src with kx along rows and then ky along
// columns, reflecting at the borders.
func SeparableFilter(src *raster.Plane, kx, ky []float64) *raster.Plane {
	w, h := src.Width, src.Height
	tmp := raster.NewPlane(w, h)
	out := raster.NewPlane(w, h)

	rowBuf := make([]float64, w+len(kx)-1)
	for y := range h {
		Correlate1D(tmp.Row(y), src.Row(y), kx, rowBuf)
	}

	col := make([]float64, h)
	colOut := make([]float64, h)
	colBuf := make([]float64, h+len(ky)-1)
	for x := range w {
		for y := range h {
			col[y] = tmp.Pix[y*w+x]
		}
		Correlate1D(colOut, col, ky, colBuf)
		for y := range h {
			out.Pix[y*w+x] = colOut[y]
		}
	}
	return out
}

// Correlate1D writes the same-size correlation of src with an odd-length
// kernel into dst, using scratch (len(src)+len(kernel)-1) for the
// reflect-101 padded signal.
func Correlate1D(dst, src, kernel, scratch []float64) {
	n := len(src)
	r := len(kernel) / halfDivisor
	padded := scratch[:n+2*r]
	for i := range padded {
		padded[i] = src[Reflect101(i-r, n)]
	}
	simdops.Float64Ops().ConvolveValid(dst[:n], padded, kernel)
}

// Reflect101 maps an out-of-range index back into [0,n) by mirroring
// around the edge samples (…2 1 | 0 1 2 … n-2 n-1 | n-2 …).
func Reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*(n-1) - i
		}
	}
	return i
}

// Clamp maps an out-of-range index to the nearest edge sample.
func Clamp(i, n int) int {
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}
