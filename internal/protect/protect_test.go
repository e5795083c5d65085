package protect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/testutil"
)

const (
	testSize   = 32
	testRadius = 6.0
)

// stripe returns an opaque white raster with a black vertical band.
func stripe(size, x0, x1 int) *raster.Raster {
	r := raster.Fill(size, size, 1, 1, 1, 1)
	for y := range size {
		for x := x0; x < x1; x++ {
			r.SetPixel(x, y, 0, 0, 0, 1)
		}
	}
	return r
}

func TestEdgeMap_SolidHasNoEdges(t *testing.T) {
	edges := EdgeMap(raster.Fill(testSize, testSize, 0.3, 0.6, 0.9, 1))
	testutil.AssertPlaneConstant(t, edges, 0, 0)
}

func TestEdgeMap_LumaEdges(t *testing.T) {
	edges := EdgeMap(stripe(testSize, 12, 20))

	assert.Equal(t, 1.0, edges.At(11, 16))
	assert.Equal(t, 1.0, edges.At(19, 16))
	assert.Zero(t, edges.At(2, 16))
	assert.Zero(t, edges.At(15, 16))
}

func TestEdgeMap_AlphaSilhouette(t *testing.T) {
	// Same colour everywhere, only alpha changes: luma sees nothing.
	r := raster.Fill(testSize, testSize, 0.5, 0.5, 0.5, 0)
	for y := range testSize {
		for x := 16; x < testSize; x++ {
			r.Set(x, y, raster.Alpha, 1)
		}
	}

	edges := EdgeMap(r)

	var count int
	for _, v := range edges.Pix {
		if v == 1 {
			count++
		}
	}
	assert.Equal(t, testSize, count, "one edge pixel per row")
	assert.Equal(t, 1.0, edges.At(15, 8))
}

func TestPairEdgeMap(t *testing.T) {
	a := stripe(testSize, 4, 8)
	b := stripe(testSize, 20, 24)

	edges, err := PairEdgeMap(a, b)
	require.NoError(t, err)

	assert.Equal(t, 1.0, edges.At(3, 10))
	assert.Equal(t, 1.0, edges.At(19, 10))

	_, err = PairEdgeMap(a, raster.New(testSize, testSize/2))
	assert.True(t, errors.Is(err, raster.ErrShapeMismatch))
}

func TestWeight_DistanceRamp(t *testing.T) {
	const w = 20
	edges := raster.NewPlane(w, 1)
	edges.Set(0, 0, 1)

	weight := Weight(edges, testRadius)

	assert.Zero(t, weight.At(0, 0))
	for x := 1; x < w; x++ {
		want := min(float64(x)/testRadius, 1)
		assert.InDelta(t, want, weight.At(x, 0), 1e-12, "x=%d", x)
	}
	testutil.AssertMonotonic(t, weight.Pix)
	testutil.AssertAllInRange(t, weight.Pix, 0, 1)
}

func TestWeight_Threshold(t *testing.T) {
	edges := raster.FillPlane(4, 1, EdgeThreshold)
	weight := Weight(edges, testRadius)
	testutil.AssertPlaneConstant(t, weight, 1, 0)

	edges.Set(2, 0, EdgeThreshold+0.01)
	weight = Weight(edges, testRadius)
	assert.Zero(t, weight.At(2, 0))
}

func TestWeight_NoEdgesIsOne(t *testing.T) {
	weight := Weight(raster.NewPlane(testSize, testSize), testRadius)
	testutil.AssertPlaneConstant(t, weight, 1, 0)
}

func TestWeight_RadiusFloor(t *testing.T) {
	edges := raster.NewPlane(3, 1)
	edges.Set(0, 0, 1)

	for _, radius := range []float64{0, -5} {
		weight := Weight(edges, radius)
		assert.Equal(t, []float64{0, 1, 1}, weight.Pix)
	}
}

func TestPairWeight(t *testing.T) {
	a := stripe(testSize, 12, 20)

	weight, err := PairWeight(a, a, testRadius)
	require.NoError(t, err)

	assert.Zero(t, weight.At(11, 5))
	assert.InDelta(t, 1.0/testRadius, weight.At(10, 5), 1e-12)
	assert.Equal(t, 1.0, weight.At(0, 5))
}
