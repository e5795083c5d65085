package inbetween

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-cel-inbetween/internal/imageio"
	"github.com/tphakala/go-cel-inbetween/internal/pipeline"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
)

// Raster is a height×width RGBA image with samples in [0,1], stored
// row-major and interleaved.
type Raster = raster.Raster

// Plane is a single-channel height×width weight map or mask.
type Plane = raster.Plane

// Field is a dense per-pixel displacement field.
type Field = raster.Field

// Naming controls output file names: <Prefix><Index padded to Digits>.<Ext>.
type Naming = pipeline.Naming

// Frame describes one planned inbetween: its 1-based ordinal, timestep,
// output index and file name.
type Frame = pipeline.Frame

// Config holds inbetweening parameters. A Config is read-only once passed
// to Generate, so the same value may be shared between concurrent calls.
type Config struct {
	// Frames is the number of inbetweens to generate between the keyframes.
	// Inbetween i of N is placed at t = i/(N+1).
	Frames int

	// EdgeProtectRadius is the distance in pixels from the nearest detected
	// edge at which cross-fading reaches full strength. Radii below 0.001
	// are raised to 0.001.
	EdgeProtectRadius float64

	// OcclusionThreshold is the magnitude of |flow(A→B) + flow(B→A)| above
	// which a pixel's motion is treated as unreliable.
	OcclusionThreshold float64

	// LineStrength in [0,1] controls how strongly line-art is re-darkened
	// after compositing. 0 disables reinjection.
	LineStrength float64

	// LineKernel is the line mask dilation size. Even values are rounded up
	// to the next odd size.
	LineKernel int

	// FlowScale multiplies both flow fields before use.
	FlowScale float64

	// Naming controls output frame numbering and file names.
	Naming Naming

	// EnableParallel renders frames concurrently. Output is identical to
	// sequential rendering and frames reach the sink in order.
	EnableParallel bool

	// Workers bounds the number of concurrent frame renderers when
	// EnableParallel is set. 0 means GOMAXPROCS.
	Workers int

	// Logger receives pipeline progress. nil discards it.
	Logger logrus.FieldLogger
}

var (
	// ErrInvalidConfig is returned when the configuration is nil.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidParameter is returned when a parameter is outside its domain.
	ErrInvalidParameter = pipeline.ErrInvalidParameter

	// ErrShapeMismatch is returned when keyframes or intermediate maps differ
	// in size.
	ErrShapeMismatch = raster.ErrShapeMismatch

	// ErrInputNotFound is returned when a keyframe path cannot be opened.
	ErrInputNotFound = imageio.ErrInputNotFound

	// ErrUnsupportedFormat is returned when keyframe data cannot be decoded
	// into an RGBA raster.
	ErrUnsupportedFormat = imageio.ErrUnsupportedFormat
)

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		Frames:             DefaultFrames,
		EdgeProtectRadius:  DefaultEdgeProtectRadius,
		OcclusionThreshold: DefaultOcclusionThreshold,
		LineStrength:       DefaultLineStrength,
		LineKernel:         DefaultLineKernel,
		FlowScale:          DefaultFlowScale,
		Naming:             DefaultNaming(),
	}
}

// DefaultNaming returns four-digit PNG names numbered from 1.
func DefaultNaming() Naming {
	return pipeline.DefaultNaming()
}

// Validate checks every parameter against its domain.
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}
	if c.Frames < minFrames {
		return fmt.Errorf("%w: frames must be at least %d, got %d", ErrInvalidParameter, minFrames, c.Frames)
	}
	if !finite(c.EdgeProtectRadius) || c.EdgeProtectRadius < 0 {
		return fmt.Errorf("%w: edge protection radius must be a non-negative number, got %v",
			ErrInvalidParameter, c.EdgeProtectRadius)
	}
	if !finite(c.OcclusionThreshold) || c.OcclusionThreshold <= 0 {
		return fmt.Errorf("%w: occlusion threshold must be positive, got %v",
			ErrInvalidParameter, c.OcclusionThreshold)
	}
	if math.IsNaN(c.LineStrength) || c.LineStrength < minLineStrength || c.LineStrength > maxLineStrength {
		return fmt.Errorf("%w: line strength must be in [%g, %g], got %v",
			ErrInvalidParameter, minLineStrength, maxLineStrength, c.LineStrength)
	}
	if c.LineKernel < minLineKernel {
		return fmt.Errorf("%w: line kernel must be at least %d, got %d", ErrInvalidParameter, minLineKernel, c.LineKernel)
	}
	if !finite(c.FlowScale) {
		return fmt.Errorf("%w: flow scale must be finite, got %v", ErrInvalidParameter, c.FlowScale)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidParameter, c.Workers)
	}
	return c.Naming.Validate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
