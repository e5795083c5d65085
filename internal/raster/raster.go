// Package raster defines the value types shared by every inbetweening stage:
// 4-channel colour rasters, single-channel planes (weight maps and masks)
// and 2-vector displacement fields.
//
// All types store samples row-major in a flat slice. Stages never mutate
// their inputs; each returns a freshly allocated value.
package raster

import (
	"errors"
	"fmt"
)

// Channels is the number of samples per raster pixel (R, G, B, A).
const Channels = 4

// Channel indices within a raster pixel.
const (
	Red = iota
	Green
	Blue
	Alpha
)

// ErrShapeMismatch indicates two values participating in one operation
// do not share the same width and height.
var ErrShapeMismatch = errors.New("raster shape mismatch")

// Sized is implemented by every spatial value type in this package.
type Sized interface {
	Size() (width, height int)
}

// SameSize returns ErrShapeMismatch (wrapped with both sizes) unless all
// values share the width and height of the first.
func SameSize(values ...Sized) error {
	if len(values) < 2 {
		return nil
	}
	w0, h0 := values[0].Size()
	for _, v := range values[1:] {
		w, h := v.Size()
		if w != w0 || h != h0 {
			return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, w0, h0, w, h)
		}
	}
	return nil
}

// Raster is a height×width×4 image with samples nominally in [0,1].
type Raster struct {
	Width, Height int
	Pix           []float64
}

// New allocates a zeroed (transparent black) raster.
func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*Channels),
	}
}

// Size returns the raster dimensions.
func (r *Raster) Size() (int, int) { return r.Width, r.Height }

// Offset returns the index of the first channel of pixel (x, y).
func (r *Raster) Offset(x, y int) int { return (y*r.Width + x) * Channels }

// At returns channel c of pixel (x, y).
func (r *Raster) At(x, y, c int) float64 { return r.Pix[r.Offset(x, y)+c] }

// Set stores v into channel c of pixel (x, y).
func (r *Raster) Set(x, y, c int, v float64) { r.Pix[r.Offset(x, y)+c] = v }

// SetPixel stores all four channels of pixel (x, y).
func (r *Raster) SetPixel(x, y int, red, green, blue, alpha float64) {
	i := r.Offset(x, y)
	r.Pix[i+Red] = red
	r.Pix[i+Green] = green
	r.Pix[i+Blue] = blue
	r.Pix[i+Alpha] = alpha
}

// Fill returns a raster of the given size with every pixel set to the colour.
func Fill(width, height int, red, green, blue, alpha float64) *Raster {
	r := New(width, height)
	for i := 0; i < len(r.Pix); i += Channels {
		r.Pix[i+Red] = red
		r.Pix[i+Green] = green
		r.Pix[i+Blue] = blue
		r.Pix[i+Alpha] = alpha
	}
	return r
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	out := New(r.Width, r.Height)
	copy(out.Pix, r.Pix)
	return out
}

// Channel extracts channel c into a new plane.
func (r *Raster) Channel(c int) *Plane {
	p := NewPlane(r.Width, r.Height)
	for i := range p.Pix {
		p.Pix[i] = r.Pix[i*Channels+c]
	}
	return p
}

// Plane is a height×width single-channel map: an edge indicator, a weight
// map or a line mask.
type Plane struct {
	Width, Height int
	Pix           []float64
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// FillPlane returns a plane with every sample set to v.
func FillPlane(width, height int, v float64) *Plane {
	p := NewPlane(width, height)
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

// Size returns the plane dimensions.
func (p *Plane) Size() (int, int) { return p.Width, p.Height }

// At returns the sample at (x, y).
func (p *Plane) At(x, y int) float64 { return p.Pix[y*p.Width+x] }

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v float64) { p.Pix[y*p.Width+x] = v }

// Row returns the samples of row y, aliasing the plane storage.
func (p *Plane) Row(y int) []float64 { return p.Pix[y*p.Width : (y+1)*p.Width] }

// Clone returns a deep copy of p.
func (p *Plane) Clone() *Plane {
	out := NewPlane(p.Width, p.Height)
	copy(out.Pix, p.Pix)
	return out
}

// Replicate copies the plane into all four channels of a new raster so it
// can travel through raster-only stages such as the warper.
func (p *Plane) Replicate() *Raster {
	r := New(p.Width, p.Height)
	for i, v := range p.Pix {
		j := i * Channels
		r.Pix[j] = v
		r.Pix[j+1] = v
		r.Pix[j+2] = v
		r.Pix[j+3] = v
	}
	return r
}

// Max returns the per-pixel maximum of two planes.
func Max(a, b *Plane) (*Plane, error) {
	if err := SameSize(a, b); err != nil {
		return nil, err
	}
	out := NewPlane(a.Width, a.Height)
	for i := range out.Pix {
		out.Pix[i] = max(a.Pix[i], b.Pix[i])
	}
	return out, nil
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
