package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	const w, h = 16, 4
	src := raster.New(w, h)
	for i := range src.Pix {
		src.Pix[i] = float64(float32(i%256) / 255)
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "frame.png")
	require.NoError(t, Write(path, src))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, w, got.Width)
	assert.Equal(t, h, got.Height)
	assert.Equal(t, src.Pix, got.Pix, "8-bit samples round-trip exactly")
}

func TestEncode_RoundsAndClamps(t *testing.T) {
	r := &raster.Raster{Width: 1, Height: 1, Pix: []float64{-0.2, 1.7, 0.5, 0.999}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	c := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 128, A: 255}, c)
}

func TestLoad_GrayIsUpconverted(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0] = 0
	g.Pix[1] = 255

	path := filepath.Join(t.TempDir(), "gray.png")
	writePNG(t, path, g)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1, 1, 1}, r.Pix)
}

func TestLoad_OpaqueRGBGainsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 0, B: 51, A: 255})

	path := filepath.Join(t.TempDir(), "rgb.png")
	writePNG(t, path, img)

	r, err := Load(path)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0.2, 1}, r.Pix, 1e-7)
}

func TestLoad_StraightAlphaPreserved(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix = []uint8{200, 100, 50, 1}

	path := filepath.Join(t.TempDir(), "alpha.png")
	writePNG(t, path, img)

	r, err := Load(path)
	require.NoError(t, err)
	want := []float64{
		float64(float32(200) / 255),
		float64(float32(100) / 255),
		float64(float32(50) / 255),
		float64(float32(1) / 255),
	}
	assert.Equal(t, want, r.Pix)
}

func TestLoad_SixteenBitReduced(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0x80ff, B: 0x0100, A: 0x7f00})

	path := filepath.Join(t.TempDir(), "deep.png")
	writePNG(t, path, img)

	r, err := Load(path)
	require.NoError(t, err)
	want := []float64{
		1,
		float64(float32(0x80) / 255),
		float64(float32(0x01) / 255),
		float64(float32(0x7f) / 255),
	}
	assert.Equal(t, want, r.Pix)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
