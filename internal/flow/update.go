package flow

import (
	"github.com/tphakala/go-cel-inbetween/internal/filter"
	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// updateMatrices linearizes the displacement constraint at every pixel
// around the current estimate. The expansion of the second image is
// sampled bilinearly at the displaced position and averaged with the first.
//
// Returns matrixChannels values per pixel: the normal equations
// (g11, g12, g22) and right-hand side (h1, h2) of the local 2×2 system.
func updateMatrices(r0, r1 *coeffImage, flow *raster.Field) []float64 {
	w, h := flow.Width, flow.Height
	m := make([]float64, w*h*matrixChannels)

	for y := range h {
		for x := range w {
			dx, dy := flow.At(x, y)
			fx := float64(x) + dx
			fy := float64(y) + dy
			x1 := mathutil.FloorInt(fx)
			y1 := mathutil.FloorInt(fy)
			p0 := r0.at(x, y)

			var r2, r3, r4, r5, r6 float64
			if x1 >= 0 && x1 < w-1 && y1 >= 0 && y1 < h-1 {
				fx -= float64(x1)
				fy -= float64(y1)
				a00 := (1 - fx) * (1 - fy)
				a01 := fx * (1 - fy)
				a10 := (1 - fx) * fy
				a11 := fx * fy

				c00 := r1.at(x1, y1)
				c01 := r1.at(x1+1, y1)
				c10 := r1.at(x1, y1+1)
				c11 := r1.at(x1+1, y1+1)
				sample := func(c int) float64 {
					return a00*c00[c] + a01*c01[c] + a10*c10[c] + a11*c11[c]
				}

				r2 = sample(0)
				r3 = sample(1)
				r4 = (p0[2] + sample(2)) * 0.5
				r5 = (p0[3] + sample(3)) * 0.5
				r6 = (p0[4] + sample(4)) * 0.25
			} else {
				r4 = p0[2]
				r5 = p0[3]
				r6 = p0[4] * 0.5
			}

			r2 = (p0[0] - r2) * 0.5
			r3 = (p0[1] - r3) * 0.5
			r2 += r4*dy + r6*dx
			r3 += r6*dy + r5*dx

			if s := borderScale(x, w) * borderScale(y, h); s != 1 {
				r2 *= s
				r3 *= s
				r4 *= s
				r5 *= s
				r6 *= s
			}

			out := m[(y*w+x)*matrixChannels:]
			out[0] = r4*r4 + r6*r6
			out[1] = (r4 + r5) * r6
			out[2] = r5*r5 + r6*r6
			out[3] = r4*r2 + r6*r3
			out[4] = r6*r2 + r5*r3
		}
	}
	return m
}

// borderScale returns the attenuation of index i along an axis of length n.
func borderScale(i, n int) float64 {
	s := 1.0
	if i < borderWidth {
		s *= borderWeights[i]
	}
	if i >= n-borderWidth {
		s *= borderWeights[n-i-1]
	}
	return s
}

// solveFlow sums the per-pixel systems over a block×block box window,
// replicating edge rows and columns, and solves the regularized 2×2
// system at every pixel.
func solveFlow(m []float64, w, h, block int) *raster.Field {
	half := block / 2
	scale := 1 / float64(block*block)
	stride := w * matrixChannels
	out := raster.NewField(w, h)

	row := func(y int) []float64 {
		y = filter.Clamp(y, h)
		return m[y*stride : (y+1)*stride]
	}

	// Column sums for the window ending one row above the image.
	vsum := make([]float64, stride)
	for j := -half - 1; j < half; j++ {
		src := row(j)
		for i := range vsum {
			vsum[i] += src[i]
		}
	}

	var g [matrixChannels]float64
	for y := range h {
		add := row(y + half)
		sub := row(y - half - 1)
		for i := range vsum {
			vsum[i] += add[i] - sub[i]
		}

		g = [matrixChannels]float64{}
		for j := -half - 1; j < half; j++ {
			k := filter.Clamp(j, w) * matrixChannels
			for c := range g {
				g[c] += vsum[k+c]
			}
		}

		for x := range w {
			a := filter.Clamp(x+half, w) * matrixChannels
			s := filter.Clamp(x-half-1, w) * matrixChannels
			for c := range g {
				g[c] += vsum[a+c] - vsum[s+c]
			}

			g11 := g[0] * scale
			g12 := g[1] * scale
			g22 := g[2] * scale
			h1 := g[3] * scale
			h2 := g[4] * scale

			idet := 1 / (g11*g22 - g12*g12 + detRegularizer)
			out.Set(x, y, (g11*h2-g12*h1)*idet, (g22*h1-g12*h2)*idet)
		}
	}
	return out
}
