package filter

import (
	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// ResizeBilinear resamples src to width×height with bilinear interpolation.
// Destination pixel centres map to source coordinates (d+0.5)*scale-0.5;
// positions past either edge take the edge sample.
func ResizeBilinear(src *raster.Plane, width, height int) *raster.Plane {
	out := raster.NewPlane(width, height)
	if width == src.Width && height == src.Height {
		copy(out.Pix, src.Pix)
		return out
	}

	xs, xw := linearTaps(src.Width, width)
	ys, yw := linearTaps(src.Height, height)

	for y := range height {
		y0 := ys[y]
		y1 := Clamp(y0+1, src.Height)
		fy := yw[y]
		r0 := src.Row(y0)
		r1 := src.Row(y1)
		dst := out.Row(y)
		for x := range width {
			x0 := xs[x]
			x1 := Clamp(x0+1, src.Width)
			fx := xw[x]
			top := r0[x0]*(1-fx) + r0[x1]*fx
			bottom := r1[x0]*(1-fx) + r1[x1]*fx
			dst[x] = top*(1-fy) + bottom*fy
		}
	}
	return out
}

// linearTaps precomputes the left source index and fractional weight for
// every destination index along one axis.
func linearTaps(srcLen, dstLen int) ([]int, []float64) {
	idx := make([]int, dstLen)
	frac := make([]float64, dstLen)
	scale := float64(srcLen) / float64(dstLen)

	for d := range dstLen {
		f := (float64(d)+0.5)*scale - 0.5
		s := mathutil.FloorInt(f)
		f -= float64(s)
		if s < 0 {
			s, f = 0, 0
		}
		if s >= srcLen-1 {
			s, f = srcLen-1, 0
		}
		idx[d] = s
		frac[d] = f
	}
	return idx, frac
}
