package filter

import (
	"math"

	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// DistanceTransform returns, for every pixel, the exact Euclidean distance
// to the nearest pixel where feature is true. Without any feature pixel
// every distance is +Inf.
//
// The squared distance is computed separably with the lower-envelope
// algorithm of Felzenszwalb and Huttenlocher: one pass over columns, one
// over rows, each linear in the number of pixels.
func DistanceTransform(feature []bool, width, height int) *raster.Plane {
	inf := math.Inf(1)
	d2 := make([]float64, width*height)
	for i, f := range feature {
		if f {
			d2[i] = 0
		} else {
			d2[i] = inf
		}
	}

	n := max(width, height)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := range width {
		for y := range height {
			f[y] = d2[y*width+x]
		}
		lowerEnvelope(f[:height], d[:height], v, z)
		for y := range height {
			d2[y*width+x] = d[y]
		}
	}

	for y := range height {
		row := d2[y*width : (y+1)*width]
		copy(f, row)
		lowerEnvelope(f[:width], d[:width], v, z)
		copy(row, d[:width])
	}

	out := raster.NewPlane(width, height)
	for i, s := range d2 {
		out.Pix[i] = math.Sqrt(s)
	}
	return out
}

// lowerEnvelope computes d[q] = min_p (q-p)² + f[p] for a sampled function
// f that may contain +Inf entries.
func lowerEnvelope(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := -1

	for q := range n {
		if math.IsInf(f[q], 1) {
			continue
		}
		for {
			if k < 0 {
				k = 0
				v[0] = q
				z[0] = math.Inf(-1)
				z[1] = math.Inf(1)
				break
			}
			p := v[k]
			s := ((f[q] + float64(q*q)) - (f[p] + float64(p*p))) / float64(2*(q-p))
			if s <= z[k] {
				k--
				continue
			}
			k++
			v[k] = q
			z[k] = s
			z[k+1] = math.Inf(1)
			break
		}
	}

	if k < 0 {
		for q := range n {
			d[q] = math.Inf(1)
		}
		return
	}

	j := 0
	for q := range n {
		for z[j+1] < float64(q) {
			j++
		}
		dq := float64(q - v[j])
		d[q] = dq*dq + f[v[j]]
	}
}
