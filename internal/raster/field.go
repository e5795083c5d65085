package raster

import (
	"math"

	"github.com/tphakala/go-cel-inbetween/internal/simdops"
)

// Field is a height×width displacement field. Element (x, y) holds the
// pixel offset (dx, dy) from a source raster to a target raster, stored
// interleaved in Vec.
type Field struct {
	Width, Height int
	Vec           []float64
}

// NewField allocates a zero displacement field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Vec:    make([]float64, width*height*2),
	}
}

// FieldFromPlanes interleaves separate dx and dy planes into a field.
func FieldFromPlanes(dx, dy *Plane) (*Field, error) {
	if err := SameSize(dx, dy); err != nil {
		return nil, err
	}
	f := NewField(dx.Width, dx.Height)
	simdops.Float64Ops().Interleave2(f.Vec, dx.Pix, dy.Pix)
	return f, nil
}

// Size returns the field dimensions.
func (f *Field) Size() (int, int) { return f.Width, f.Height }

// At returns the displacement at (x, y).
func (f *Field) At(x, y int) (dx, dy float64) {
	i := (y*f.Width + x) * 2
	return f.Vec[i], f.Vec[i+1]
}

// Set stores the displacement at (x, y).
func (f *Field) Set(x, y int, dx, dy float64) {
	i := (y*f.Width + x) * 2
	f.Vec[i] = dx
	f.Vec[i+1] = dy
}

// Scale returns a new field with every displacement multiplied by s.
func (f *Field) Scale(s float64) *Field {
	out := NewField(f.Width, f.Height)
	simdops.Float64Ops().Scale(out.Vec, f.Vec, s)
	return out
}

// Magnitude returns the per-pixel Euclidean length of the field.
func (f *Field) Magnitude() *Plane {
	p := NewPlane(f.Width, f.Height)
	for i := range p.Pix {
		p.Pix[i] = math.Hypot(f.Vec[2*i], f.Vec[2*i+1])
	}
	return p
}

// Add returns the element-wise sum of two fields.
func Add(a, b *Field) (*Field, error) {
	if err := SameSize(a, b); err != nil {
		return nil, err
	}
	out := NewField(a.Width, a.Height)
	for i := range out.Vec {
		out.Vec[i] = a.Vec[i] + b.Vec[i]
	}
	return out, nil
}
