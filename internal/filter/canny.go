package filter

import (
	"math"

	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Sobel computes the 3×3 Sobel derivatives of an 8-bit image, replicating
// the edge samples at the borders.
func Sobel(src *raster.Gray8) (dx, dy []int) {
	w, h := src.Width, src.Height
	dx = make([]int, w*h)
	dy = make([]int, w*h)

	at := func(x, y int) int {
		return int(src.Pix[Clamp(y, h)*w+Clamp(x, w)])
	}

	for y := range h {
		for x := range w {
			tl, tc, tr := at(x-1, y-1), at(x, y-1), at(x+1, y-1)
			ml, mr := at(x-1, y), at(x+1, y)
			bl, bc, br := at(x-1, y+1), at(x, y+1), at(x+1, y+1)

			dx[y*w+x] = (tr + 2*mr + br) - (tl + 2*ml + bl)
			dy[y*w+x] = (bl + 2*bc + br) - (tl + 2*tc + tr)
		}
	}
	return dx, dy
}

// Canny detects edges in an 8-bit image using L1 gradient magnitude,
// non-maximum suppression along the quantized gradient direction and
// 8-connected hysteresis between the low and high thresholds.
//
// Returns a plane with 1 on edge pixels and 0 elsewhere.
func Canny(src *raster.Gray8, low, high float64) *raster.Plane {
	if low > high {
		low, high = high, low
	}
	lo := int(math.Floor(low))
	hi := int(math.Floor(high))

	w, h := src.Width, src.Height
	dx, dy := Sobel(src)

	mag := make([]int, w*h)
	for i := range mag {
		mag[i] = abs(dx[i]) + abs(dy[i])
	}
	magAt := func(x, y int) int {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	state := make([]uint8, w*h)
	stack := make([]int, 0, w)

	for y := range h {
		for x := range w {
			i := y*w + x
			state[i] = cannyNotEdge

			m := mag[i]
			if m <= lo || !isLocalMax(m, dx[i], dy[i], x, y, magAt) {
				continue
			}
			if m > hi {
				state[i] = cannyEdge
				stack = append(stack, i)
			} else {
				state[i] = cannyCandidate
			}
		}
	}

	// Grow strong edges through connected candidates.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				j := ny*w + nx
				if state[j] == cannyCandidate {
					state[j] = cannyEdge
					stack = append(stack, j)
				}
			}
		}
	}

	out := raster.NewPlane(w, h)
	for i, s := range state {
		if s == cannyEdge {
			out.Pix[i] = 1
		}
	}
	return out
}

// isLocalMax reports whether m is a maximum across the gradient direction.
// Directions are quantized into horizontal, vertical and the two diagonals
// using tan(22.5°) and tan(67.5°) in fixed point.
func isLocalMax(m, gx, gy, x, y int, magAt func(x, y int) int) bool {
	ax := abs(gx)
	ay := abs(gy) << cannyShift
	tg22 := ax * cannyTan22

	if ay < tg22 {
		return m > magAt(x-1, y) && m >= magAt(x+1, y)
	}

	tg67 := tg22 + (ax << (cannyShift + 1))
	if ay > tg67 {
		return m > magAt(x, y-1) && m >= magAt(x, y+1)
	}

	s := 1
	if (gx ^ gy) < 0 {
		s = -1
	}
	return m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
