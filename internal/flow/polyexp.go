package flow

import (
	"fmt"
	"math"

	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// polyBasis holds the separable applicability weights of a (2n+1)² window
// and the entries of the inverse Gram matrix needed to turn weighted sums
// into quadratic coefficients.
type polyBasis struct {
	n   int
	g   []float64 // g[k] = weight at offset ±k, normalized over -n..n
	xg  []float64 // k·g[k]
	xxg []float64 // k²·g[k]

	ig11, ig03, ig33, ig55 float64
}

// newPolyBasis prepares the Gaussian applicability for neighbourhood
// half-size n. A sigma below single precision epsilon is derived from n.
func newPolyBasis(n int, sigma float64) (*polyBasis, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: polynomial half-size must be positive, got %d", ErrInvalidParams, n)
	}
	if sigma < sigmaEpsilon {
		sigma = float64(n) * polyAutoSigmaScale
	}

	b := &polyBasis{
		n:   n,
		g:   make([]float64, n+1),
		xg:  make([]float64, n+1),
		xxg: make([]float64, n+1),
	}

	var sum float64
	for k := range n + 1 {
		b.g[k] = math.Exp(-float64(k*k) / (2 * sigma * sigma))
		if k == 0 {
			sum += b.g[k]
		} else {
			sum += 2 * b.g[k]
		}
	}
	for k := range n + 1 {
		b.g[k] /= sum
		b.xg[k] = float64(k) * b.g[k]
		b.xxg[k] = float64(k*k) * b.g[k]
	}

	// Gram matrix of the basis 1, x, y, x², y², xy under the applicability.
	var g00, g11, g33, g55 float64
	for y := -n; y <= n; y++ {
		for x := -n; x <= n; x++ {
			w := b.weight(y) * b.weight(x)
			xx := float64(x * x)
			yy := float64(y * y)
			g00 += w
			g11 += w * xx
			g33 += w * xx * xx
			g55 += w * xx * yy
		}
	}

	gram := make([]float64, gramSize*gramSize)
	set := func(i, j int, v float64) {
		gram[i*gramSize+j] = v
		gram[j*gramSize+i] = v
	}
	set(0, 0, g00)
	set(1, 1, g11)
	set(2, 2, g11)
	set(0, 3, g11)
	set(0, 4, g11)
	set(3, 3, g33)
	set(4, 4, g33)
	set(3, 4, g55)
	set(5, 5, g55)

	inv, err := mathutil.InverseSPD(gramSize, gram)
	if err != nil {
		return nil, fmt.Errorf("polynomial basis: %w", err)
	}
	b.ig11 = inv.At(1, 1)
	b.ig03 = inv.At(0, 3)
	b.ig33 = inv.At(3, 3)
	b.ig55 = inv.At(5, 5)
	return b, nil
}

func (b *polyBasis) weight(k int) float64 {
	if k < 0 {
		k = -k
	}
	return b.g[k]
}

// coeffImage stores per-pixel quadratic coefficients, coeffChannels each,
// in the order y, x, y², x², xy.
type coeffImage struct {
	width, height int
	c             []float64
}

func (ci *coeffImage) at(x, y int) []float64 {
	i := (y*ci.width + x) * coeffChannels
	return ci.c[i : i+coeffChannels]
}

// expand fits a local quadratic polynomial around every pixel of src. The
// vertical pass clamps rows at the image edges and the horizontal pass
// replicates the edge columns.
func (b *polyBasis) expand(src *raster.Plane) *coeffImage {
	w, h, n := src.Width, src.Height, b.n
	out := &coeffImage{width: w, height: h, c: make([]float64, w*h*coeffChannels)}

	padded := make([]float64, (w+2*n)*rowChannels)
	row := padded[n*rowChannels : (n+w)*rowChannels]

	for y := range h {
		center := src.Row(y)
		for x := range w {
			row[x*rowChannels] = center[x] * b.g[0]
			row[x*rowChannels+1] = 0
			row[x*rowChannels+2] = 0
		}
		for k := 1; k <= n; k++ {
			up := src.Row(max(y-k, 0))
			down := src.Row(min(y+k, h-1))
			for x := range w {
				p := up[x] + down[x]
				t := down[x] - up[x]
				row[x*rowChannels] += b.g[k] * p
				row[x*rowChannels+1] += b.xg[k] * t
				row[x*rowChannels+2] += b.xxg[k] * p
			}
		}

		first := row[:rowChannels]
		last := row[(w-1)*rowChannels:]
		for k := range n {
			copy(padded[k*rowChannels:], first)
			copy(padded[(n+w+k)*rowChannels:], last)
		}

		for x := range w {
			c := (x + n) * rowChannels
			b1 := padded[c] * b.g[0]
			b3 := padded[c+1] * b.g[0]
			b5 := padded[c+2] * b.g[0]
			var b2, b4, b6 float64

			for k := 1; k <= n; k++ {
				l := c - k*rowChannels
				r := c + k*rowChannels
				sum := padded[r] + padded[l]
				b1 += sum * b.g[k]
				b4 += sum * b.xxg[k]
				b2 += (padded[r] - padded[l]) * b.xg[k]
				b3 += (padded[r+1] + padded[l+1]) * b.g[k]
				b6 += (padded[r+1] - padded[l+1]) * b.xg[k]
				b5 += (padded[r+2] + padded[l+2]) * b.g[k]
			}

			d := out.at(x, y)
			d[0] = b3 * b.ig11
			d[1] = b2 * b.ig11
			d[2] = b1*b.ig03 + b5*b.ig33
			d[3] = b1*b.ig03 + b4*b.ig33
			d[4] = b6 * b.ig55
		}
	}
	return out
}
