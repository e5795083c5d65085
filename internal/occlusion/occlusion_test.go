package occlusion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/testutil"
)

const testThreshold = 1.5

func TestReliability_ConsistentFlowIsReliable(t *testing.T) {
	ab := raster.NewField(4, 3)
	ba := raster.NewField(4, 3)
	for y := range 3 {
		for x := range 4 {
			ab.Set(x, y, float64(x), -float64(y))
			ba.Set(x, y, -float64(x), float64(y))
		}
	}

	rel, err := Reliability(ab, ba, testThreshold)
	require.NoError(t, err)
	testutil.AssertPlaneConstant(t, rel, 1, 0)
}

func TestReliability_Step(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"zero", 0, 0, 1},
		{"below", 1.0, 1.0, 1},   // |sum| ≈ 1.414
		{"at_threshold", 1.5, 0, 0},
		{"above", 0, -1.6, 0},
		{"far_above", 30, 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := raster.NewField(1, 1)
			ba := raster.NewField(1, 1)
			ab.Set(0, 0, tt.dx, tt.dy)

			rel, err := Reliability(ab, ba, testThreshold)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel.At(0, 0))
		})
	}
}

func TestReliability_OnlyZeroOrOne(t *testing.T) {
	ab := raster.NewField(8, 8)
	ba := raster.NewField(8, 8)
	for i := range ab.Vec {
		ab.Vec[i] = float64(i%7) * 0.3
	}

	rel, err := Reliability(ab, ba, testThreshold)
	require.NoError(t, err)
	for _, v := range rel.Pix {
		assert.True(t, v == 0 || v == 1)
	}
}

func TestReliability_ShapeMismatch(t *testing.T) {
	_, err := Reliability(raster.NewField(4, 4), raster.NewField(3, 4), testThreshold)
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrShapeMismatch))
}
