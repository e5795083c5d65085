package inbetween

// Default parameter values.
const (
	// DefaultFrames is the number of inbetweens generated per keyframe pair.
	DefaultFrames = 3

	// DefaultEdgeProtectRadius is the distance in pixels from a detected edge
	// at which cross-fading regains full strength.
	DefaultEdgeProtectRadius = 6.0

	// DefaultOcclusionThreshold is the forward/backward flow disagreement in
	// pixels above which motion is considered unreliable.
	DefaultOcclusionThreshold = 1.5

	// DefaultLineStrength is the line-art reinjection strength.
	DefaultLineStrength = 0.85

	// DefaultLineKernel is the line mask dilation kernel size.
	DefaultLineKernel = 3

	// DefaultFlowScale is the global flow magnitude multiplier.
	DefaultFlowScale = 1.0
)

// Parameter domains.
const (
	minFrames       = 1
	minLineKernel   = 1
	minLineStrength = 0.0
	maxLineStrength = 1.0
)

// Log field names.
const (
	fieldState   = "state"
	fieldWidth   = "width"
	fieldHeight  = "height"
	fieldFrames  = "frames"
	fieldIndex   = "index"
	fieldT       = "t"
	fieldName    = "name"
	fieldEmitted = "emitted"
)
