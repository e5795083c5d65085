// Package imageio loads keyframes into rasters and writes inbetween frames
// as PNG files.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// ErrInputNotFound indicates a keyframe path that cannot be opened.
var ErrInputNotFound = errors.New("input not found")

// ErrUnsupportedFormat indicates keyframe data that cannot be decoded
// into a colour raster.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Directory permissions for created output directories.
const dirPerm = 0o755

// sampleScale maps 8-bit samples onto [0,1].
const sampleScale float32 = 255

// Load reads and decodes the keyframe at path.
func Load(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads any registered image format (PNG, JPEG, GIF, BMP, TIFF,
// WebP) into a raster with samples in [0,1]. Grayscale and opaque images
// gain an alpha of 1; 16-bit images are reduced to 8 bits first.
func Decode(r io.Reader) (*raster.Raster, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	out := raster.New(b.Dx(), b.Dy())
	if len(out.Pix) == 0 {
		return nil, fmt.Errorf("%w: empty %s image", ErrUnsupportedFormat, format)
	}

	for y := range out.Height {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+out.Width*raster.Channels]
		dst := out.Pix[y*out.Width*raster.Channels:]
		for i, v := range row {
			dst[i] = float64(float32(v) / sampleScale)
		}
	}
	return out, nil
}

// toNRGBA converts img to non-premultiplied 8-bit RGBA with its origin at
// (0, 0). Straight-alpha sources are copied without a premultiplied round
// trip so colour under low alpha survives exactly.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range b.Dy() {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:], src.Pix[i:i+b.Dx()*raster.Channels])
		}
	case *image.NRGBA64:
		for y := range b.Dy() {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()*raster.Channels]
			for j := range row {
				// High byte of each big-endian 16-bit sample.
				row[j] = src.Pix[i+2*j]
			}
		}
	default:
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	}
	return dst
}

// Write encodes r as a PNG at path, creating parent directories as needed.
func Write(path string, r *raster.Raster) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Encode(f, r); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Encode writes r as an 8-bit RGBA PNG. Samples are clamped to [0,1] and
// rounded to the nearest 8-bit level.
func Encode(w io.Writer, r *raster.Raster) error {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, v := range r.Pix {
		img.Pix[i] = raster.Round8(v)
	}
	return png.Encode(w, img)
}
