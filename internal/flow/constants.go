package flow

// Default estimator parameters. They favour robustness over accuracy on
// flat, low-texture cel artwork and must not drift: output parity depends
// on them.
const (
	DefaultPyrScale   = 0.5
	DefaultLevels     = 5
	DefaultWinSize    = 25
	DefaultIterations = 5
	DefaultPolyN      = 7
	DefaultPolySigma  = 1.5
)

// Pyramid construction.
const (
	// minLevelSize stops the pyramid before either side drops below it.
	minLevelSize = 32

	// Anti-alias smoothing before each level is resized:
	// sigma = (1/scale - 1)*0.5, size = max(round(sigma*5)|1, 3).
	smoothSigmaFactor = 0.5
	smoothSizeFactor  = 5
	minSmoothSize     = 3
)

// Polynomial expansion.
const (
	// polyAutoSigmaScale derives the applicability sigma from the
	// neighbourhood half-size when none is given.
	polyAutoSigmaScale = 0.3

	// sigmaEpsilon is the single precision machine epsilon.
	sigmaEpsilon = 1.1920929e-07

	// gramSize is the number of quadratic basis functions:
	// 1, x, y, x², y², xy.
	gramSize = 6

	// coeffChannels per pixel of an expanded image: y, x, y², x², xy.
	// The constant term is not stored.
	coeffChannels = 5

	// Vertical pass accumulators per pixel: g, x·g, x²·g.
	rowChannels = 3
)

// Displacement update.
const (
	// matrixChannels per pixel: g11, g12, g22, h1, h2.
	matrixChannels = 5

	// borderWidth is the band along each edge whose constraints are
	// attenuated by borderWeights.
	borderWidth = 5

	// detRegularizer keeps the 2×2 solve finite in textureless regions.
	detRegularizer = 1e-3
)

// borderWeights damp the constraints closest to the image edges, where
// the polynomial fit sees replicated samples.
var borderWeights = [borderWidth]float64{0.14, 0.14, 0.4472, 0.4472, 0.4472}
