package raster

// Fixed-point BT.601 luma weights with a 14-bit shift, the same integer
// arithmetic 8-bit colour-to-gray conversions use in common vision libraries.
const (
	lumaShift = 14
	lumaRound = 1 << (lumaShift - 1)
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
)

// quantScale maps a unit sample onto the 8-bit range.
const quantScale float32 = 255

// Gray8 is an 8-bit single-channel image.
type Gray8 struct {
	Width, Height int
	Pix           []uint8
}

// NewGray8 allocates a zeroed 8-bit image.
func NewGray8(width, height int) *Gray8 {
	return &Gray8{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// Size returns the image dimensions.
func (g *Gray8) Size() (int, int) { return g.Width, g.Height }

// At returns the sample at (x, y).
func (g *Gray8) At(x, y int) uint8 { return g.Pix[y*g.Width+x] }

// Plane converts to a float plane holding the raw 0..255 values.
func (g *Gray8) Plane() *Plane {
	p := NewPlane(g.Width, g.Height)
	for i, v := range g.Pix {
		p.Pix[i] = float64(v)
	}
	return p
}

// UnitPlane converts to a float plane scaled to [0,1].
func (g *Gray8) UnitPlane() *Plane {
	p := NewPlane(g.Width, g.Height)
	for i, v := range g.Pix {
		p.Pix[i] = float64(float32(v) / quantScale)
	}
	return p
}

// Truncate8 converts a unit sample to 8 bits by clamping and truncating in
// single precision. Keyframes round-trip through this exactly.
func Truncate8(v float64) uint8 {
	return uint8(float32(Clamp01(v)) * quantScale)
}

// Round8 converts a unit sample to 8 bits with round-to-nearest.
func Round8(v float64) uint8 {
	return uint8(float32(Clamp01(v))*quantScale + 0.5)
}

// Luma8 converts the RGB channels of r to 8-bit luminance. Alpha is ignored.
func Luma8(r *Raster) *Gray8 {
	g := NewGray8(r.Width, r.Height)
	for i := range g.Pix {
		j := i * Channels
		red := int(Truncate8(r.Pix[j+Red]))
		green := int(Truncate8(r.Pix[j+Green]))
		blue := int(Truncate8(r.Pix[j+Blue]))
		g.Pix[i] = uint8((red*lumaR + green*lumaG + blue*lumaB + lumaRound) >> lumaShift)
	}
	return g
}

// Alpha8 quantizes the alpha channel of r to 8 bits.
func Alpha8(r *Raster) *Gray8 {
	g := NewGray8(r.Width, r.Height)
	for i := range g.Pix {
		g.Pix[i] = Truncate8(r.Pix[i*Channels+Alpha])
	}
	return g
}
