// Package composite blends two warped keyframes into one inbetween frame.
package composite

import (
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// HardPickThreshold is the timestep from which B is the closer keyframe.
const HardPickThreshold = 0.5

// Compose blends wa (warped from A) and wb (warped from B) at timestep t.
//
// Where edgeW·relW is 1 the frame is a plain cross-fade with weight t for
// B. Where it drops toward 0 the weight falls back toward a hard choice of
// the temporally closer keyframe, so contours and unreliable motion never
// ghost:
//
//	wB = t·edgeW·relW + (1 - edgeW·relW)·pickB,  pickB = 1 if t ≥ 0.5
//
// t is clamped to [0,1]; wB and the output samples are clamped to [0,1].
func Compose(wa, wb *raster.Raster, t float64, edgeW, relW *raster.Plane) (*raster.Raster, error) {
	if err := raster.SameSize(wa, wb, edgeW, relW); err != nil {
		return nil, err
	}
	weights, err := WeightB(t, edgeW, relW)
	if err != nil {
		return nil, err
	}

	out := raster.New(wa.Width, wa.Height)
	for i, weightB := range weights.Pix {
		weightA := 1 - weightB

		j := i * raster.Channels
		for c := range raster.Channels {
			out.Pix[j+c] = raster.Clamp01(weightA*wa.Pix[j+c] + weightB*wb.Pix[j+c])
		}
	}
	return out, nil
}

// WeightB returns the per-pixel weight Compose gives to B at timestep t.
func WeightB(t float64, edgeW, relW *raster.Plane) (*raster.Plane, error) {
	if err := raster.SameSize(edgeW, relW); err != nil {
		return nil, err
	}

	t = raster.Clamp01(t)
	var pickB float64
	if t >= HardPickThreshold {
		pickB = 1
	}

	out := raster.NewPlane(edgeW.Width, edgeW.Height)
	for i := range out.Pix {
		ok := edgeW.Pix[i] * relW.Pix[i]
		out.Pix[i] = raster.Clamp01(t*ok + (1-ok)*pickB)
	}
	return out, nil
}
