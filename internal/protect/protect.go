// Package protect builds the edge-protection weight map that keeps the
// compositor from cross-fading across contours.
package protect

import (
	"github.com/tphakala/go-cel-inbetween/internal/filter"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Edge detection thresholds.
const (
	LumaLow   = 60
	LumaHigh  = 150
	AlphaLow  = 30
	AlphaHigh = 90
)

const (
	// EdgeThreshold binarizes the merged edge indicator.
	EdgeThreshold = 0.2

	// MinRadius floors the protection radius.
	MinRadius = 0.001
)

// EdgeMap returns a 0/1 indicator of contours in r: Canny edges of the
// 8-bit luminance merged with Canny edges of the alpha channel, which
// catch silhouettes against transparency.
func EdgeMap(r *raster.Raster) *raster.Plane {
	luma := filter.Canny(raster.Luma8(r), LumaLow, LumaHigh)
	alpha := filter.Canny(raster.Alpha8(r), AlphaLow, AlphaHigh)

	// Both planes come from r and always share its size.
	merged, _ := raster.Max(luma, alpha)
	return merged
}

// PairEdgeMap merges the edge indicators of two keyframes.
func PairEdgeMap(a, b *raster.Raster) (*raster.Plane, error) {
	if err := raster.SameSize(a, b); err != nil {
		return nil, err
	}
	return raster.Max(EdgeMap(a), EdgeMap(b))
}

// Weight converts an edge indicator into a blend weight: 0 on edge pixels,
// rising linearly with Euclidean distance to the nearest edge and reaching
// 1 at radius. Radii below MinRadius are raised to it. Without any edge
// pixel the weight is 1 everywhere.
func Weight(edges *raster.Plane, radius float64) *raster.Plane {
	feature := make([]bool, len(edges.Pix))
	for i, v := range edges.Pix {
		feature[i] = v > EdgeThreshold
	}

	dist := filter.DistanceTransform(feature, edges.Width, edges.Height)
	r := max(radius, MinRadius)

	out := raster.NewPlane(edges.Width, edges.Height)
	for i, d := range dist.Pix {
		out.Pix[i] = raster.Clamp01(d / r)
	}
	return out
}

// PairWeight builds the protection weight for a keyframe pair.
func PairWeight(a, b *raster.Raster, radius float64) (*raster.Plane, error) {
	edges, err := PairEdgeMap(a, b)
	if err != nil {
		return nil, err
	}
	return Weight(edges, radius), nil
}
