package inbetween

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

func writeKeyframe(t *testing.T, path string, r *Raster) {
	t.Helper()
	require.NoError(t, WriteFrame(path, r))
}

func TestGenerateFiles(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.png")
	bPath := filepath.Join(dir, "b.png")
	writeKeyframe(t, aPath, raster.Fill(32, 32, 1, 0, 0, 1))
	writeKeyframe(t, bPath, raster.Fill(32, 32, 0, 0, 1, 1))

	outDir := filepath.Join(dir, "out", "shot01")
	cfg := DefaultConfig()
	cfg.Frames = 3

	res, err := GenerateFiles(aPath, bPath, outDir, cfg)
	require.NoError(t, err)
	require.Len(t, res.Frames, 3)

	for _, name := range []string{"0001.png", "0002.png", "0003.png"} {
		r, err := LoadKeyframe(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, 32, r.Width)
		assert.Equal(t, 32, r.Height)
	}

	// Middle frame is the even red/blue mix, quantized to 8 bits.
	mid, err := LoadKeyframe(filepath.Join(outDir, "0002.png"))
	require.NoError(t, err)
	half := float64(float32(128) / 255)
	assert.InDeltaSlice(t, []float64{half, 0, half, 1}, mid.Pix[:4], 1e-12)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestGenerateFiles_ValidatesBeforeLoading(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Frames = 0

	_, err := GenerateFiles(filepath.Join(dir, "missing_a.png"), filepath.Join(dir, "missing_b.png"), dir, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.False(t, errors.Is(err, ErrInputNotFound), "keyframes must not be read")
}

func TestGenerateFiles_MissingKeyframe(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.png")
	writeKeyframe(t, aPath, raster.Fill(8, 8, 0, 0, 0, 1))

	_, err := GenerateFiles(aPath, filepath.Join(dir, "b.png"), dir, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
}

func TestGenerateFiles_ShapeMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.png")
	bPath := filepath.Join(dir, "b.png")
	writeKeyframe(t, aPath, raster.Fill(64, 64, 1, 0, 0, 1))
	writeKeyframe(t, bPath, raster.Fill(32, 32, 0, 0, 1, 1))

	outDir := filepath.Join(dir, "out")
	_, err := GenerateFiles(aPath, bPath, outDir, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	assert.NoDirExists(t, outDir)
}

func TestGenerateFiles_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(aPath, []byte("plain text"), 0o600))

	_, err := GenerateFiles(aPath, aPath, dir, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
