// Package flow estimates dense optical flow between two 8-bit luminance
// images using Farneback's polynomial expansion algorithm.
//
// Each pixel neighbourhood is approximated by a quadratic polynomial. The
// displacement that best maps the expansion of the first image onto the
// second is solved in a box window, coarse to fine over an image pyramid,
// refining the estimate a fixed number of times per level.
package flow

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-cel-inbetween/internal/filter"
	"github.com/tphakala/go-cel-inbetween/internal/mathutil"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// ErrInvalidParams indicates estimator parameters outside their domain.
var ErrInvalidParams = errors.New("invalid flow parameters")

// Params configures the estimator.
type Params struct {
	PyrScale   float64 // Downscale factor between pyramid levels, in (0,1)
	Levels     int     // Maximum number of levels above the full-resolution image
	WinSize    int     // Box window over which constraints are averaged
	Iterations int     // Refinements per pyramid level
	PolyN      int     // Polynomial neighbourhood size
	PolySigma  float64 // Gaussian applicability sigma for the polynomial fit
}

// DefaultParams returns the parameters used for keyframe pairs.
func DefaultParams() Params {
	return Params{
		PyrScale:   DefaultPyrScale,
		Levels:     DefaultLevels,
		WinSize:    DefaultWinSize,
		Iterations: DefaultIterations,
		PolyN:      DefaultPolyN,
		PolySigma:  DefaultPolySigma,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if !(p.PyrScale > 0 && p.PyrScale < 1) {
		return fmt.Errorf("%w: pyramid scale must be in (0,1), got %g", ErrInvalidParams, p.PyrScale)
	}
	if p.Levels < 0 {
		return fmt.Errorf("%w: levels must be non-negative, got %d", ErrInvalidParams, p.Levels)
	}
	if p.WinSize < 1 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidParams, p.WinSize)
	}
	if p.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidParams, p.Iterations)
	}
	if p.PolyN < 3 {
		return fmt.Errorf("%w: polynomial neighbourhood must be at least 3, got %d", ErrInvalidParams, p.PolyN)
	}
	if p.PolySigma < 0 {
		return fmt.Errorf("%w: polynomial sigma must be non-negative, got %g", ErrInvalidParams, p.PolySigma)
	}
	return nil
}

// Estimate computes the displacement field from prev to next: content at
// (x, y) in prev is found at (x+dx, y+dy) in next.
//
// Flat inputs produce a zero or near-zero field rather than an error.
func Estimate(prev, next *raster.Gray8, p Params) (*raster.Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := raster.SameSize(prev, next); err != nil {
		return nil, err
	}

	cols, rows := prev.Size()
	if cols == 0 || rows == 0 {
		return raster.NewField(cols, rows), nil
	}

	basis, err := newPolyBasis(p.PolyN/2, p.PolySigma)
	if err != nil {
		return nil, err
	}

	images := [2]*raster.Plane{prev.Plane(), next.Plane()}
	levels := pyramidDepth(cols, rows, p)

	var flow *raster.Field
	for k := levels; k >= 0; k-- {
		scale := levelScale(k, p.PyrScale)
		sigma := (1/scale - 1) * smoothSigmaFactor
		smoothSize := max(mathutil.RoundHalfEven(sigma*smoothSizeFactor)|1, minSmoothSize)
		width := mathutil.RoundHalfEven(float64(cols) * scale)
		height := mathutil.RoundHalfEven(float64(rows) * scale)

		if flow == nil {
			flow = raster.NewField(width, height)
		} else {
			flow, err = resizeField(flow, width, height, 1/p.PyrScale)
			if err != nil {
				return nil, err
			}
		}

		var coeffs [2]*coeffImage
		for i, img := range images {
			smoothed, err := filter.GaussianBlur(img, smoothSize, sigma)
			if err != nil {
				return nil, fmt.Errorf("pyramid level %d: %w", k, err)
			}
			coeffs[i] = basis.expand(filter.ResizeBilinear(smoothed, width, height))
		}

		m := updateMatrices(coeffs[0], coeffs[1], flow)
		for i := range p.Iterations {
			flow = solveFlow(m, width, height, p.WinSize)
			if i < p.Iterations-1 {
				m = updateMatrices(coeffs[0], coeffs[1], flow)
			}
		}
	}
	return flow, nil
}

// pyramidDepth returns how many levels above full resolution are used:
// at most p.Levels, stopping before a side would fall below minLevelSize.
func pyramidDepth(cols, rows int, p Params) int {
	scale := 1.0
	k := 0
	for ; k < p.Levels; k++ {
		scale *= p.PyrScale
		if float64(cols)*scale < minLevelSize || float64(rows)*scale < minLevelSize {
			break
		}
	}
	return k
}

func levelScale(k int, pyrScale float64) float64 {
	scale := 1.0
	for range k {
		scale *= pyrScale
	}
	return scale
}

// resizeField carries a coarse estimate to the next finer level, resizing
// both components and scaling the displacements to the new pixel size.
func resizeField(f *raster.Field, width, height int, s float64) (*raster.Field, error) {
	dx := raster.NewPlane(f.Width, f.Height)
	dy := raster.NewPlane(f.Width, f.Height)
	for i := range dx.Pix {
		dx.Pix[i] = f.Vec[2*i]
		dy.Pix[i] = f.Vec[2*i+1]
	}

	resized, err := raster.FieldFromPlanes(
		filter.ResizeBilinear(dx, width, height),
		filter.ResizeBilinear(dy, width, height),
	)
	if err != nil {
		return nil, err
	}
	return resized.Scale(s), nil
}
