// Package occlusion flags pixels where forward and backward flow disagree.
package occlusion

import (
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Reliability returns 1 where |ab + ba| < threshold and 0 elsewhere.
//
// The two fields are summed at the same pixel without first warping ba
// into the coordinate frame of ab. This is an approximation of a full
// forward-backward consistency check, and blending behaviour downstream is
// tuned against it.
func Reliability(ab, ba *raster.Field, threshold float64) (*raster.Plane, error) {
	sum, err := raster.Add(ab, ba)
	if err != nil {
		return nil, err
	}

	mag := sum.Magnitude()
	out := raster.NewPlane(mag.Width, mag.Height)
	for i, m := range mag.Pix {
		if m < threshold {
			out.Pix[i] = 1
		}
	}
	return out, nil
}
