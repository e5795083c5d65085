// Package lineart extracts soft masks of dark line-art strokes and
// re-darkens composited frames with them.
package lineart

import (
	"fmt"

	"github.com/tphakala/go-cel-inbetween/internal/filter"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Mask extraction constants.
const (
	// Difference-of-Gaussians band-pass sigmas.
	FineSigma   = 0.8
	CoarseSigma = 2.0

	// StrokeThreshold binarizes the band-pass response.
	StrokeThreshold = 0.08

	// SoftenSigma blurs the dilated stroke mask.
	SoftenSigma = 0.8
)

// Mask returns a soft line-art mask of r: 1 on strong dark strokes, 0
// elsewhere. Kernel is the size of the elliptical dilation; values below 1
// are raised to 1 and even values are increased to the next odd one.
func Mask(r *raster.Raster, kernel int) (*raster.Plane, error) {
	luma := raster.Luma8(r).UnitPlane()
	inv := raster.NewPlane(luma.Width, luma.Height)
	for i, v := range luma.Pix {
		inv.Pix[i] = 1 - v
	}

	fine, err := filter.GaussianBlur(inv, 0, FineSigma)
	if err != nil {
		return nil, fmt.Errorf("line mask: %w", err)
	}
	coarse, err := filter.GaussianBlur(inv, 0, CoarseSigma)
	if err != nil {
		return nil, fmt.Errorf("line mask: %w", err)
	}

	strokes := make([]float64, len(inv.Pix))
	for i := range strokes {
		if raster.Clamp01(fine.Pix[i]-coarse.Pix[i]) > StrokeThreshold {
			strokes[i] = 1
		}
	}

	se, err := filter.Ellipse(OddKernel(kernel))
	if err != nil {
		return nil, fmt.Errorf("line mask: %w", err)
	}
	dilated := &raster.Plane{
		Width:  inv.Width,
		Height: inv.Height,
		Pix:    filter.Dilate(strokes, inv.Width, inv.Height, se),
	}

	soft, err := filter.GaussianBlur(dilated, 0, SoftenSigma)
	if err != nil {
		return nil, fmt.Errorf("line mask: %w", err)
	}
	for i, v := range soft.Pix {
		soft.Pix[i] = raster.Clamp01(v)
	}
	return soft, nil
}

// OddKernel raises k to at least 1 and rounds even sizes up to odd.
func OddKernel(k int) int {
	k = max(k, 1)
	if k%2 == 0 {
		k++
	}
	return k
}

// Blend mixes two line masks for timestep t as (1-t)·a + t·b, clamped.
func Blend(a, b *raster.Plane, t float64) (*raster.Plane, error) {
	if err := raster.SameSize(a, b); err != nil {
		return nil, err
	}
	out := raster.NewPlane(a.Width, a.Height)
	for i := range out.Pix {
		out.Pix[i] = raster.Clamp01((1-t)*a.Pix[i] + t*b.Pix[i])
	}
	return out, nil
}

// Reinject darkens the colour channels of base by 1 - strength·mask per
// pixel. Alpha is copied unchanged. Strength is clamped to [0,1].
func Reinject(base *raster.Raster, mask *raster.Plane, strength float64) (*raster.Raster, error) {
	if err := raster.SameSize(base, mask); err != nil {
		return nil, err
	}
	s := raster.Clamp01(strength)

	out := base.Clone()
	for i, m := range mask.Pix {
		factor := 1 - s*m
		p := out.Pix[i*raster.Channels:][:raster.Alpha]
		for c, v := range p {
			p[c] = raster.Clamp01(v * factor)
		}
	}
	return out, nil
}
