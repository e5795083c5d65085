// Package testutil provides reusable test helpers and synthetic keyframes
// for the inbetweening tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	PixelTolerance   = 1e-6
	BlendTolerance   = 1e-2
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := range n / halfDivisor {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertSum verifies that the elements add up to the expected total.
func AssertSum(t *testing.T, s []float64, expected, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range s {
		sum += c
	}
	return assert.InDelta(t, expected, sum, tolerance,
		"sum = %f, want %f", sum, expected)
}

// AssertMonotonic verifies that a slice is monotonically increasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertPlaneInDelta verifies two planes have the same size and agree
// sample by sample within tolerance.
func AssertPlaneInDelta(t *testing.T, expected, actual *raster.Plane, tolerance float64) bool {
	t.Helper()
	if !assert.Equal(t, expected.Width, actual.Width, "width") ||
		!assert.Equal(t, expected.Height, actual.Height, "height") {
		return false
	}
	return assertSamplesInDelta(t, expected.Pix, actual.Pix, expected.Width, 1, tolerance)
}

// AssertPlaneConstant verifies every sample of p equals value within tolerance.
func AssertPlaneConstant(t *testing.T, p *raster.Plane, value, tolerance float64) bool {
	t.Helper()
	for i, v := range p.Pix {
		if math.Abs(v-value) > tolerance {
			return assert.Fail(t, "plane not constant",
				"pixel (%d,%d)=%f, want %f", i%p.Width, i/p.Width, v, value)
		}
	}
	return true
}

// AssertRasterInDelta verifies two rasters agree channel by channel within tolerance.
func AssertRasterInDelta(t *testing.T, expected, actual *raster.Raster, tolerance float64) bool {
	t.Helper()
	if !assert.Equal(t, expected.Width, actual.Width, "width") ||
		!assert.Equal(t, expected.Height, actual.Height, "height") {
		return false
	}
	return assertSamplesInDelta(t, expected.Pix, actual.Pix, expected.Width, raster.Channels, tolerance)
}

func assertSamplesInDelta(t *testing.T, expected, actual []float64, width, channels int, tolerance float64) bool {
	t.Helper()
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			px := i / channels
			return assert.Fail(t, "samples differ",
				"pixel (%d,%d) channel %d: got %f, want %f",
				px%width, px/width, i%channels, actual[i], expected[i])
		}
	}
	return true
}

// Disc returns an opaque white raster with a filled disc of the given
// colour centred at (cx, cy).
func Disc(width, height int, cx, cy, radius float64, r, g, b float64) *raster.Raster {
	out := raster.Fill(width, height, 1, 1, 1, 1)
	for y := range height {
		for x := range width {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= radius {
				out.SetPixel(x, y, r, g, b, 1)
			}
		}
	}
	return out
}

// Blob returns a smooth Gaussian bump in luminance centred at (cx, cy),
// dark on a white background. Smooth content gives optical flow a
// well-conditioned signal.
func Blob(width, height int, cx, cy, sigma float64) *raster.Raster {
	out := raster.New(width, height)
	for y := range height {
		for x := range width {
			dx, dy := float64(x)-cx, float64(y)-cy
			v := 1 - 0.8*math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma))
			out.SetPixel(x, y, v, v, v, 1)
		}
	}
	return out
}
