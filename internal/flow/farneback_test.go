package flow

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/testutil"
)

const (
	testSize      = 64
	testBlobSigma = 6.0
	testShift     = 3.0
	flatTolerance = 1e-6
)

// =============================================================================
// Parameters
// =============================================================================

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	assert.InDelta(t, 0.5, p.PyrScale, 0)
	assert.Equal(t, 5, p.Levels)
	assert.Equal(t, 25, p.WinSize)
	assert.Equal(t, 5, p.Iterations)
	assert.Equal(t, 7, p.PolyN)
	assert.InDelta(t, 1.5, p.PolySigma, 0)
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"pyr_scale_zero", func(p *Params) { p.PyrScale = 0 }},
		{"pyr_scale_one", func(p *Params) { p.PyrScale = 1 }},
		{"pyr_scale_nan", func(p *Params) { p.PyrScale = math.NaN() }},
		{"negative_levels", func(p *Params) { p.Levels = -1 }},
		{"zero_window", func(p *Params) { p.WinSize = 0 }},
		{"zero_iterations", func(p *Params) { p.Iterations = 0 }},
		{"poly_n_too_small", func(p *Params) { p.PolyN = 1 }},
		{"negative_sigma", func(p *Params) { p.PolySigma = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParams))
		})
	}
}

func TestPyramidDepth(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		cols, rows int
		want       int
	}{
		{16, 16, 0},
		{63, 64, 0},
		{64, 64, 1},
		{640, 480, 3},
		{4096, 4096, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pyramidDepth(tt.cols, tt.rows, p), "%dx%d", tt.cols, tt.rows)
	}
}

// =============================================================================
// Polynomial expansion
// =============================================================================

func TestPolyBasis_Weights(t *testing.T) {
	b, err := newPolyBasis(3, DefaultPolySigma)
	require.NoError(t, err)

	sum := b.g[0]
	for k := 1; k <= b.n; k++ {
		sum += 2 * b.g[k]
		assert.Less(t, b.g[k], b.g[k-1])
		assert.InDelta(t, float64(k)*b.g[k], b.xg[k], 1e-15)
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	testutil.AssertNoNaNOrInf(t, []float64{b.ig11, b.ig03, b.ig33, b.ig55})
	assert.Positive(t, b.ig11)
	assert.Negative(t, b.ig03)
}

// TestExpand_RecoversQuadratic verifies the fit of f(x, y) = x² away from
// the borders: linear x coefficient 2x, quadratic x coefficient 1.
func TestExpand_RecoversQuadratic(t *testing.T) {
	const w, h = 20, 12
	b, err := newPolyBasis(3, DefaultPolySigma)
	require.NoError(t, err)

	src := raster.NewPlane(w, h)
	for y := range h {
		for x := range w {
			src.Set(x, y, float64(x*x))
		}
	}

	coeffs := b.expand(src)

	for y := range h {
		for x := 3; x < w-3; x++ {
			c := coeffs.at(x, y)
			assert.InDelta(t, 0, c[0], 1e-6, "y term at (%d,%d)", x, y)
			assert.InDelta(t, float64(2*x), c[1], 1e-6, "x term at (%d,%d)", x, y)
			assert.InDelta(t, 0, c[2], 1e-6, "y² term at (%d,%d)", x, y)
			assert.InDelta(t, 1, c[3], 1e-6, "x² term at (%d,%d)", x, y)
			assert.InDelta(t, 0, c[4], 1e-6, "xy term at (%d,%d)", x, y)
		}
	}
}

// =============================================================================
// Estimation
// =============================================================================

func TestEstimate_FlatImagesGiveZeroFlow(t *testing.T) {
	for _, v := range []uint8{0, 128, 255} {
		img := raster.NewGray8(testSize, testSize)
		for i := range img.Pix {
			img.Pix[i] = v
		}

		f, err := Estimate(img, img, DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, testSize, f.Width)
		assert.Equal(t, testSize, f.Height)
		testutil.AssertAllInRange(t, f.Vec, -flatTolerance, flatTolerance)
	}
}

func TestEstimate_IdenticalImagesGiveZeroFlow(t *testing.T) {
	// Narrow enough that the last row and column are exactly white.
	img := raster.Luma8(testutil.Blob(testSize, testSize, 32, 32, 4))

	f, err := Estimate(img, img, DefaultParams())
	require.NoError(t, err)

	testutil.AssertAllInRange(t, f.Vec, -1e-3, 1e-3)
}

// TestEstimate_ShiftedBlob verifies direction and rough magnitude of the
// flow at the centre of a horizontally moving blob.
func TestEstimate_ShiftedBlob(t *testing.T) {
	const cx, cy = 30.0, 32.0
	a := raster.Luma8(testutil.Blob(testSize, testSize, cx, cy, testBlobSigma))
	b := raster.Luma8(testutil.Blob(testSize, testSize, cx+testShift, cy, testBlobSigma))

	forward, err := Estimate(a, b, DefaultParams())
	require.NoError(t, err)
	backward, err := Estimate(b, a, DefaultParams())
	require.NoError(t, err)

	dx, dy := forward.At(int(cx), int(cy))
	assert.Greater(t, dx, 1.0, "forward dx")
	assert.Less(t, dx, 5.0, "forward dx")
	assert.Less(t, math.Abs(dy), 1.0, "forward dy")

	bx, by := backward.At(int(cx+testShift), int(cy))
	assert.Less(t, bx, -1.0, "backward dx")
	assert.Greater(t, bx, -5.0, "backward dx")
	assert.Less(t, math.Abs(by), 1.0, "backward dy")

	testutil.AssertNoNaNOrInf(t, forward.Vec)
}

func TestEstimate_SmallImage(t *testing.T) {
	img := raster.NewGray8(5, 3)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 10)
	}

	f, err := Estimate(img, img, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 5, f.Width)
	assert.Equal(t, 3, f.Height)
	testutil.AssertNoNaNOrInf(t, f.Vec)
}

func TestEstimate_ShapeMismatch(t *testing.T) {
	_, err := Estimate(raster.NewGray8(8, 8), raster.NewGray8(8, 4), DefaultParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrShapeMismatch))
}

func TestEstimate_InvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Iterations = 0

	img := raster.NewGray8(8, 8)
	_, err := Estimate(img, img, p)
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestBorderScale(t *testing.T) {
	const n = 40
	assert.InDelta(t, 0.14, borderScale(0, n), 0)
	assert.InDelta(t, 0.4472, borderScale(4, n), 0)
	assert.InDelta(t, 1.0, borderScale(5, n), 0)
	assert.InDelta(t, 1.0, borderScale(n-6, n), 0)
	assert.InDelta(t, 0.14, borderScale(n-1, n), 0)
}
