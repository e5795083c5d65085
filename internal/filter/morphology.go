package filter

import (
	"fmt"
	"math"
)

// StructuringElement is a binary neighbourhood anchored at its centre.
type StructuringElement struct {
	Size int
	Mask []bool // Size×Size, row-major
}

// Ellipse builds the elliptical structuring element inscribed in a
// size×size square. Each row spans ±round(c·sqrt(1-(dy/r)²)) around the
// centre column.
func Ellipse(size int) (StructuringElement, error) {
	if size < 1 {
		return StructuringElement{}, fmt.Errorf("structuring element size must be positive, got %d", size)
	}

	se := StructuringElement{Size: size, Mask: make([]bool, size*size)}
	r := size / halfDivisor
	c := size / halfDivisor
	invR2 := 0.0
	if r > 0 {
		invR2 = 1 / float64(r*r)
	}

	for i := range size {
		dy := i - r
		if abs(dy) > r {
			continue
		}
		dx := int(math.RoundToEven(float64(c) * math.Sqrt(float64(r*r-dy*dy)*invR2)))
		j1 := max(c-dx, 0)
		j2 := min(c+dx+1, size)
		for j := j1; j < j2; j++ {
			se.Mask[i*size+j] = true
		}
	}
	return se, nil
}

// Dilate replaces each sample with the maximum over the structuring
// element. Neighbours outside the plane are ignored.
func Dilate(src []float64, width, height int, se StructuringElement) []float64 {
	out := make([]float64, len(src))
	anchor := se.Size / halfDivisor

	for y := range height {
		for x := range width {
			best := math.Inf(-1)
			for ky := range se.Size {
				sy := y + ky - anchor
				if sy < 0 || sy >= height {
					continue
				}
				for kx := range se.Size {
					sx := x + kx - anchor
					if sx < 0 || sx >= width || !se.Mask[ky*se.Size+kx] {
						continue
					}
					best = max(best, src[sy*width+sx])
				}
			}
			out[y*width+x] = best
		}
	}
	return out
}
