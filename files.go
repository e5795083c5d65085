package inbetween

import (
	"path/filepath"

	"github.com/tphakala/go-cel-inbetween/internal/imageio"
)

// LoadKeyframe reads a keyframe from path. Any format decodable by the
// standard library or golang.org/x/image is accepted; grayscale and opaque
// images are expanded to RGBA.
func LoadKeyframe(path string) (*Raster, error) {
	return imageio.Load(path)
}

// WriteFrame writes r as an 8-bit RGBA PNG, creating parent directories.
func WriteFrame(path string, r *Raster) error {
	return imageio.Write(path, r)
}

// GenerateFiles loads the keyframes at aPath and bPath, generates the
// inbetweens and writes each one to outDir under its scheduled name.
// The configuration is validated before either keyframe is read.
func GenerateFiles(aPath, bPath, outDir string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a, err := LoadKeyframe(aPath)
	if err != nil {
		return nil, err
	}
	b, err := LoadKeyframe(bPath)
	if err != nil {
		return nil, err
	}

	return Generate(a, b, cfg, func(f Frame, r *Raster) error {
		return WriteFrame(filepath.Join(outDir, f.Name), r)
	})
}
