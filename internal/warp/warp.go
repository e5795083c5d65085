// Package warp resamples rasters along displacement fields.
package warp

import (
	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Warp backward-maps src along f: destination pixel (x, y) is sampled
// bilinearly from src at (x - dx, y - dy). Taps falling outside src read
// as transparent black, so a position entirely outside the source yields
// (0, 0, 0, 0).
//
// A zero field reproduces src exactly.
func Warp(src *raster.Raster, f *raster.Field) (*raster.Raster, error) {
	if err := raster.SameSize(src, f); err != nil {
		return nil, err
	}

	w, h := src.Width, src.Height
	out := raster.New(w, h)

	for y := range h {
		for x := range w {
			dx, dy := f.At(x, y)
			sx := float64(x) - dx
			sy := float64(y) - dy
			x0 := mathutil.FloorInt(sx)
			y0 := mathutil.FloorInt(sy)
			fx := sx - float64(x0)
			fy := sy - float64(y0)

			dst := out.Pix[out.Offset(x, y):][:raster.Channels]
			accumulate(dst, src, x0, y0, (1-fx)*(1-fy))
			accumulate(dst, src, x0+1, y0, fx*(1-fy))
			accumulate(dst, src, x0, y0+1, (1-fx)*fy)
			accumulate(dst, src, x0+1, y0+1, fx*fy)
		}
	}
	return out, nil
}

// accumulate adds weight times the source pixel at (x, y) into dst.
// Zero weights and positions outside src contribute nothing.
func accumulate(dst []float64, src *raster.Raster, x, y int, weight float64) {
	if weight == 0 || x < 0 || y < 0 || x >= src.Width || y >= src.Height {
		return
	}
	p := src.Pix[src.Offset(x, y):][:raster.Channels]
	for c, v := range p {
		dst[c] += weight * v
	}
}

// WarpPlane warps a single-channel map by replicating it into a raster,
// warping that, and extracting the first channel.
func WarpPlane(p *raster.Plane, f *raster.Field) (*raster.Plane, error) {
	warped, err := Warp(p.Replicate(), f)
	if err != nil {
		return nil, err
	}
	return warped.Channel(raster.Red), nil
}
