package warp

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/testutil"
)

const (
	testWidth  = 9
	testHeight = 7
)

func randomRaster(w, h int, seed uint64) *raster.Raster {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	r := raster.New(w, h)
	for i := range r.Pix {
		r.Pix[i] = rng.Float64()
	}
	return r
}

func uniformField(w, h int, dx, dy float64) *raster.Field {
	f := raster.NewField(w, h)
	for y := range h {
		for x := range w {
			f.Set(x, y, dx, dy)
		}
	}
	return f
}

func TestWarp_ZeroFieldIsIdentity(t *testing.T) {
	for seed := range uint64(4) {
		src := randomRaster(testWidth, testHeight, seed)

		out, err := Warp(src, raster.NewField(testWidth, testHeight))
		require.NoError(t, err)

		testutil.AssertRasterInDelta(t, src, out, 0)
		assert.NotSame(t, src, out)
	}
}

func TestWarp_IntegerShift(t *testing.T) {
	src := randomRaster(testWidth, testHeight, 42)

	out, err := Warp(src, uniformField(testWidth, testHeight, 2, 1))
	require.NoError(t, err)

	for y := range testHeight {
		for x := range testWidth {
			for c := range raster.Channels {
				if x < 2 || y < 1 {
					assert.Zero(t, out.At(x, y, c), "(%d,%d) should be transparent", x, y)
					continue
				}
				assert.InDelta(t, src.At(x-2, y-1, c), out.At(x, y, c), 1e-12)
			}
		}
	}
}

func TestWarp_HalfPixelShift(t *testing.T) {
	src := &raster.Raster{Width: 3, Height: 1, Pix: []float64{
		0, 0, 0, 1,
		1, 1, 1, 1,
		0, 0, 0, 1,
	}}

	out, err := Warp(src, uniformField(3, 1, 0.5, 0))
	require.NoError(t, err)

	// Pixel 1 samples x=0.5, halfway between the first two pixels.
	assert.InDelta(t, 0.5, out.At(1, 0, raster.Red), 1e-12)
	assert.InDelta(t, 1.0, out.At(1, 0, raster.Alpha), 1e-12)
	// Pixel 0 samples x=-0.5: only the in-bounds tap contributes.
	assert.InDelta(t, 0.5, out.At(0, 0, raster.Alpha), 1e-12)
}

func TestWarp_OutsideIsTransparent(t *testing.T) {
	src := raster.Fill(testWidth, testHeight, 1, 1, 1, 1)

	out, err := Warp(src, uniformField(testWidth, testHeight, 100, -100))
	require.NoError(t, err)

	testutil.AssertAllInRange(t, out.Pix, 0, 0)
}

func TestWarp_ShapeMismatch(t *testing.T) {
	_, err := Warp(raster.New(4, 4), raster.NewField(4, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrShapeMismatch))
}

func TestWarpPlane(t *testing.T) {
	p := raster.NewPlane(5, 5)
	p.Set(2, 2, 1)

	out, err := WarpPlane(p, uniformField(5, 5, -1, 0))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, out.At(1, 2), 1e-12)
	assert.Zero(t, out.At(2, 2))

	identity, err := WarpPlane(p, raster.NewField(5, 5))
	require.NoError(t, err)
	testutil.AssertPlaneInDelta(t, p, identity, 0)
}

func TestWarp_NoNaN(t *testing.T) {
	src := randomRaster(testWidth, testHeight, 7)
	f := uniformField(testWidth, testHeight, math.Pi, -math.E)

	out, err := Warp(src, f)
	require.NoError(t, err)
	testutil.AssertNoNaNOrInf(t, out.Pix)
	testutil.AssertAllInRange(t, out.Pix, 0, 1)
}
